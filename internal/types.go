package internal

type Name struct {
	First  string
	Middle string
	Last   string
	Suffix string
}

// Thesis is one record after field normalization, ready for row assembly.
type Thesis struct {
	UID         string
	Title       string
	FulltextURL string
	Keywords    string
	Abstract    string
	Author      Name
	Institution string
	Advisors    [3]string
	DegreeName  string
	PubDate     string
	ISBN        string
	PageLength  string
	Source      string
	DissNote    string
	HostItem    string
	Language    string
	HostURL     string
}

type RunStats struct {
	Read       int
	Exported   int
	Restricted int
	Duplicate  int
	Malformed  int
	Skipped    int
}
