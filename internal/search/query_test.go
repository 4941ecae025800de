package search

import "testing"

func TestBuildSearchQueryClauses(t *testing.T) {
	query := BuildSearchQuery("bike", "red frame")

	boolQuery, ok := query["query"].(map[string]interface{})["bool"].(map[string]interface{})
	if !ok {
		t.Fatal("expected bool query")
	}
	should, ok := boolQuery["should"].([]interface{})
	if !ok {
		t.Fatal("expected should clauses")
	}
	if len(should) != 4 {
		t.Fatalf("expected 4 should clauses, got %d", len(should))
	}

	nameMatch := should[0].(map[string]interface{})["match"].(map[string]interface{})["name"].(map[string]interface{})
	if nameMatch["query"] != "bike" {
		t.Fatalf("unexpected name query: %v", nameMatch["query"])
	}
	if nameMatch["fuzziness"] != "auto" {
		t.Fatalf("expected auto fuzziness, got %v", nameMatch["fuzziness"])
	}

	descPhrase := should[3].(map[string]interface{})["match_phrase"].(map[string]interface{})["description"].(map[string]interface{})
	if descPhrase["query"] != "red frame" {
		t.Fatalf("unexpected description phrase query: %v", descPhrase["query"])
	}
	if descPhrase["slop"] != 6 {
		t.Fatalf("expected slop 6, got %v", descPhrase["slop"])
	}
}

func TestIndexDefinitionAnalyzer(t *testing.T) {
	def := indexDefinition()

	mappings := def["mappings"].(map[string]interface{})["properties"].(map[string]interface{})
	for _, field := range []string{"name", "description"} {
		props, ok := mappings[field].(map[string]interface{})
		if !ok {
			t.Fatalf("missing mapping for %s", field)
		}
		if props["analyzer"] != "autocomplete" {
			t.Fatalf("expected autocomplete analyzer on %s, got %v", field, props["analyzer"])
		}
	}

	tokenizer := def["settings"].(map[string]interface{})["analysis"].(map[string]interface{})["tokenizer"].(map[string]interface{})["autocomplete"].(map[string]interface{})
	if tokenizer["type"] != "edge_ngram" {
		t.Fatalf("expected edge_ngram tokenizer, got %v", tokenizer["type"])
	}
}
