package search

import "testing"

func TestSearchRequestsCarryQueryText(t *testing.T) {
	queries := searchRequests(Query{Text: "audit", Limit: 5, Offset: 10})
	if len(queries) != 2 {
		t.Fatalf("expected requests for both indexes, got %d", len(queries))
	}
	for _, sr := range queries {
		if sr.Query != "audit" {
			t.Errorf("request for %s has query %q, want %q", sr.IndexUID, sr.Query, "audit")
		}
		if sr.Limit != 5 || sr.Offset != 10 {
			t.Errorf("request for %s has limit/offset %d/%d", sr.IndexUID, sr.Limit, sr.Offset)
		}
	}
}

func TestSearchRequestsDefaultLimit(t *testing.T) {
	queries := searchRequests(Query{Text: "x"})
	for _, sr := range queries {
		if sr.Limit != 20 {
			t.Errorf("request for %s has limit %d, want 20", sr.IndexUID, sr.Limit)
		}
	}
}

func TestSearchRequestsTypeFilter(t *testing.T) {
	queries := searchRequests(Query{Text: "x", FilterType: ResultTask})
	if len(queries) != 1 {
		t.Fatalf("expected a single request, got %d", len(queries))
	}
	if queries[0].IndexUID != idxTasks {
		t.Errorf("request targets %s, want %s", queries[0].IndexUID, idxTasks)
	}

	if got := searchRequests(Query{Text: "x", FilterType: ResultType("bogus")}); len(got) != 0 {
		t.Errorf("unknown type filter should target no indexes, got %d requests", len(got))
	}
}
