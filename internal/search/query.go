package search

// indexDefinition is the settings/mappings body used when the
// advertisements index is first created: an edge-ngram autocomplete
// analyzer over both searchable fields.
func indexDefinition() map[string]interface{} {
	return map[string]interface{}{
		"settings": map[string]interface{}{
			"analysis": map[string]interface{}{
				"analyzer": map[string]interface{}{
					"autocomplete": map[string]interface{}{
						"tokenizer": "autocomplete",
						"filter":    []string{"lowercase"},
					},
				},
				"tokenizer": map[string]interface{}{
					"autocomplete": map[string]interface{}{
						"type":        "edge_ngram",
						"min_gram":    1,
						"max_gram":    20,
						"token_chars": []string{"letter", "digit"},
					},
				},
			},
		},
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"name":        map[string]interface{}{"type": "text", "analyzer": "autocomplete"},
				"description": map[string]interface{}{"type": "text", "analyzer": "autocomplete"},
			},
		},
	}
}

// BuildSearchQuery combines fuzzy and phrase matching over name and
// description with OR semantics across the four clauses.
func BuildSearchQuery(nameQuery, descriptionQuery string) map[string]interface{} {
	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"should": []interface{}{
					map[string]interface{}{
						"match": map[string]interface{}{
							"name": map[string]interface{}{
								"query":     nameQuery,
								"fuzziness": "auto",
							},
						},
					},
					map[string]interface{}{
						"match": map[string]interface{}{
							"description": map[string]interface{}{
								"query":     descriptionQuery,
								"fuzziness": "auto",
							},
						},
					},
					map[string]interface{}{
						"match_phrase": map[string]interface{}{
							"name": map[string]interface{}{
								"query": nameQuery,
								"slop":  6,
							},
						},
					},
					map[string]interface{}{
						"match_phrase": map[string]interface{}{
							"description": map[string]interface{}{
								"query": descriptionQuery,
								"slop":  6,
							},
						},
					},
				},
			},
		},
	}
}
