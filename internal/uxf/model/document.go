package model

// VersionSupported is the highest UXF format version this implementation
// understands.
const VersionSupported = "1.0"

// Document is the root of an in-memory UXF tree. Destroying a Document destroys everything it transitively
// owns: TClasses, and the root Value's collection tree.
type Document struct {
	Version string
	Custom  string
	Comment string

	// Imports holds the raw, ordered list of import directive sources,
	// retained for re-emission unless the writer's ReplaceImports option
	// is set.
	Imports []string

	// tclasses holds every ttype known to the document -- locally defined
	// or pulled in by an import -- keyed by name, plus the order names were
	// first declared or imported in.
	tclasses     map[string]*TClass
	tclassOrder  []string
	importedFrom map[string]string // tclass name -> import source, if it came from one

	// Value is the document's single root value: exactly one of
	// List|Map|Table.
	Value Value
}

// NewDocument creates an empty Document at the current supported version.
func NewDocument() *Document {
	return &Document{
		Version:      VersionSupported,
		tclasses:     make(map[string]*TClass),
		importedFrom: make(map[string]string),
		Value:        ListValue(NewList("")), // placeholder; callers set Value explicitly
	}
}

// TClass looks up a ttype by name.
func (d *Document) TClass(name string) (*TClass, bool) {
	tc, ok := d.tclasses[name]
	return tc, ok
}

// TClassNames returns every ttype name in declaration/import order.
func (d *Document) TClassNames() []string {
	names := make([]string, len(d.tclassOrder))
	copy(names, d.tclassOrder)
	return names
}

// DefineTClass registers a locally-defined (non-imported) TClass,
// replacing any previous definition with the same name: a ttype defined
// after an import that bears the same name replaces the imported one. The
// replaced name keeps its original position in tclassOrder.
func (d *Document) DefineTClass(tc *TClass) {
	if _, exists := d.tclasses[tc.Name]; !exists {
		d.tclassOrder = append(d.tclassOrder, tc.Name)
	}
	d.tclasses[tc.Name] = tc
	delete(d.importedFrom, tc.Name)
}

// ImportTClass registers a TClass pulled in from the named import source.
// It reports whether the name was already present and, if so, whether the
// existing definition has the same shape.
func (d *Document) ImportTClass(tc *TClass, source string) (existed bool, sameShape bool) {
	if existing, ok := d.tclasses[tc.Name]; ok {
		return true, existing.SameShape(tc)
	}
	d.tclasses[tc.Name] = tc
	d.tclassOrder = append(d.tclassOrder, tc.Name)
	d.importedFrom[tc.Name] = source
	return false, true
}

// ImportSourceOf returns the import source a ttype came from, if any.
func (d *Document) ImportSourceOf(name string) (string, bool) {
	s, ok := d.importedFrom[name]
	return s, ok
}

// DropTClass removes a ttype definition entirely (used by the validator's
// drop_unused mode).
func (d *Document) DropTClass(name string) {
	if _, ok := d.tclasses[name]; !ok {
		return
	}
	delete(d.tclasses, name)
	delete(d.importedFrom, name)
	for i, n := range d.tclassOrder {
		if n == name {
			d.tclassOrder = append(d.tclassOrder[:i], d.tclassOrder[i+1:]...)
			break
		}
	}
}
