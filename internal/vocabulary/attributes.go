package vocabulary

// Attribute names a typed entity attribute read by the resolver.
type Attribute string

const (
	AttrName    Attribute = "name"
	AttrType    Attribute = "type"
	AttrSameAs  Attribute = "same_as"
	AttrProfile Attribute = "profile"
)

// Cardinality tells the resolver whether to keep one value or all of them.
type Cardinality int

const (
	Single Cardinality = iota
	Multi
)

// AttributeSpec binds an attribute to the predicate it is stored under.
type AttributeSpec struct {
	Term        Term
	Cardinality Cardinality
}

// ArtistAttributes is the lookup table used to load an artist entity.
var ArtistAttributes = map[Attribute]AttributeSpec{
	AttrName:    {Term: FOAFName, Cardinality: Single},
	AttrType:    {Term: RDFType, Cardinality: Multi},
	AttrSameAs:  {Term: OWLSameAs, Cardinality: Multi},
	AttrProfile: {Term: MOMyspace, Cardinality: Single},
}

// ByPredicate inverts an attribute table, keyed by predicate IRI.
func ByPredicate(table map[Attribute]AttributeSpec) map[string]Attribute {
	out := make(map[string]Attribute, len(table))
	for attr, spec := range table {
		out[spec.Term.IRI()] = attr
	}
	return out
}
