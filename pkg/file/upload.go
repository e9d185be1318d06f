package file

// File describes a file to upload by path, with optional descriptive fields
// stored alongside it.
type File struct {
	Path    string
	Title   string
	Caption string
	Tags    string
}

// New returns a File for path.
func New(path string) *File {
	return &File{Path: path}
}

// Payload reads the file through b and returns the attributes merged with
// the non-empty descriptive fields.
func (f *File) Payload(b *Builder) (map[string]any, error) {
	attrs, err := b.FromPath(f.Path)
	if err != nil {
		return nil, err
	}

	data := attrs.Map()
	if f.Title != "" {
		data["title"] = f.Title
	}
	if f.Caption != "" {
		data["caption"] = f.Caption
	}
	if f.Tags != "" {
		data["tags"] = f.Tags
	}
	return data, nil
}
