package driver

const (
	SaveVerticesQuery = `
		UNWIND $vertices AS v
		MERGE (d:Document {id: v.id, run_id: $run_id})
		SET d.lang = v.lang,
			d.color = v.color,
			d.content = v.content
	`

	// Edges are stored in canonical endpoint order (a < b), which is how
	// the graph model hands them out, so an undirected pair maps to exactly
	// one stored relationship.
	SaveEdgesQuery = `
		UNWIND $edges AS e
		MATCH (a:Document {id: e.a, run_id: $run_id})
		MATCH (b:Document {id: e.b, run_id: $run_id})
		MERGE (a)-[r:RELATES {run_id: $run_id}]->(b)
		SET r.color = e.color
	`

	LoadVerticesQuery = `
		MATCH (d:Document {run_id: $run_id})
		RETURN d.id AS id, d.lang AS lang, d.color AS color, d.content AS content
	`

	LoadEdgesQuery = `
		MATCH (a:Document {run_id: $run_id})-[r:RELATES {run_id: $run_id}]->(b:Document {run_id: $run_id})
		RETURN a.id AS a, b.id AS b, r.color AS color
	`

	DeleteRunQuery = `
		MATCH (d:Document {run_id: $run_id})
		DETACH DELETE d
	`
)
