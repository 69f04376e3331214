package domain

// FileStore abstracts local file access for the fix-application flow.
type FileStore interface {
	Read(path string) (string, error)
	Write(path, content string) error
	CreateBackup(path string) (string, error)
	Delete(path string) error
	Exists(path string) bool
}

// ReportStore persists reports in their canonical wire form.
type ReportStore interface {
	Save(report Report, path string) error
	Load(path string) (Report, error)
}
