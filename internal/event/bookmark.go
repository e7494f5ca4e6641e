package event

// Region is a half-open byte range over the data source.
type Region struct {
	Address uint64 `json:"address"`
	Size    uint64 `json:"size"`
}

// Bookmark is a named, commented region of interest. The host owns it once it
// has been posted; the registering side retains no reference.
type Bookmark struct {
	Region  Region `json:"region"`
	Name    string `json:"name"`
	Comment string `json:"comment"`
}
