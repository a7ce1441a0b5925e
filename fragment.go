package gendocsets

// FragmentTarget locates an element inside an output page.
type FragmentTarget struct {
	Page string // e.g. "Ext.Component.html"
	ID   string // element id, without '#'
}

// Href returns the link to the target relative to the page directory.
func (t FragmentTarget) Href() string {
	return t.Page + "#" + t.ID
}

// FragmentIndex maps qualified fragment identifiers ("<Class>-<id>") to the
// page and element that defines them.
type FragmentIndex struct {
	targets map[string]FragmentTarget
}

// NewFragmentIndex returns an empty FragmentIndex.
func NewFragmentIndex() *FragmentIndex {
	return &FragmentIndex{targets: make(map[string]FragmentTarget)}
}

// Add registers element id on the page generated for class.
// A later registration of the same key replaces the earlier one.
func (x *FragmentIndex) Add(class, page, id string) {
	x.targets[class+"-"+id] = FragmentTarget{Page: page, ID: id}
}

// Lookup returns the target for a qualified fragment identifier.
func (x *FragmentIndex) Lookup(key string) (FragmentTarget, bool) {
	t, ok := x.targets[key]
	return t, ok
}

// Len returns the number of registered fragments.
func (x *FragmentIndex) Len() int {
	return len(x.targets)
}
