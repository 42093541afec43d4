package config

const (
	// MaxUploadBytes is the largest file accepted for upload (10MB).
	// Checked before any extraction work starts.
	MaxUploadBytes = 10 << 20

	// MaxPlaybookNameLength is the maximum length for playbook names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255).
	MaxPlaybookNameLength = 255

	// MaxDocumentNameLength is the maximum length for document names.
	MaxDocumentNameLength = 255

	// DefaultPageSize is the number of rows shown per page on the
	// documents, playbooks and reviews lists.
	DefaultPageSize = 5

	// ChunkMaxWords bounds a playbook chunk used for retrieval.
	ChunkMaxWords = 500

	// RetrievalTopK is how many playbook chunks are sent to the model.
	RetrievalTopK = 5
)
