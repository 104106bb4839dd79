package driver

// Triples live in the graph as
//
//	(:Resource {uri})-[:TRIPLE {predicate}]->(:Resource {uri})
//	(:Resource {uri})-[:TRIPLE {predicate}]->(:Literal {value})
//
// Every query takes the entity URI as $uri.
const (
	SaveResourceTripleQuery = `
		MERGE (s:Resource {uri: $subject})
		MERGE (o:Resource {uri: $object})
		MERGE (s)-[t:TRIPLE {predicate: $predicate}]->(o)
		RETURN s.uri AS uri
	`

	SaveLiteralTripleQuery = `
		MERGE (s:Resource {uri: $subject})
		MERGE (s)-[t:TRIPLE {predicate: $predicate}]->(o:Literal {value: $object})
		RETURN s.uri AS uri
	`

	EntityAttributesQuery = `
		MATCH (s:Resource {uri: $uri})-[t:TRIPLE]->(o)
		WHERE t.predicate IN $predicates
		RETURN t.predicate AS predicate, coalesce(o.uri, o.value) AS value
	`

	SameAsSubjectsQuery = `
		MATCH (a:Resource)-[:TRIPLE {predicate: $same_as}]->(x:Resource {uri: $uri})
		RETURN a.uri AS uri
	`

	// An event with no type counts; a typed one must be one of $kinds.
	// No ORDER BY: callers take whatever row the store returns first.
	FormationDateQuery = `
		MATCH (a:Resource {uri: $uri})-[:TRIPLE {predicate: $event}]->(ev:Resource)
		MATCH (ev)-[:TRIPLE {predicate: $date}]->(d:Literal)
		OPTIONAL MATCH (ev)-[:TRIPLE {predicate: $type}]->(k:Resource)
		WITH d, collect(k.uri) AS types
		WHERE size(types) = 0 OR any(t IN types WHERE t IN $kinds)
		RETURN d.value AS date
	`

	CloseFriendQuery = `
		MATCH (a:Resource {uri: $uri})-[:TRIPLE {predicate: $relation}]->(f:Resource)
		MATCH (f)-[:TRIPLE {predicate: $name}]->(n:Literal)
		RETURN n.value AS name
	`

	CatalogTitlesQuery = `
		MATCH (a:Resource {uri: $uri})-[:TRIPLE {predicate: $made}]->(r:Resource)
		MATCH (r)-[:TRIPLE {predicate: $title}]->(t:Literal)
		RETURN t.value AS title
	`

	DeleteSubjectQuery = `
		MATCH (s:Resource {uri: $uri})
		OPTIONAL MATCH (s)-[:TRIPLE]->(l:Literal)
		DETACH DELETE s, l
	`
)
