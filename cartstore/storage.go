package cartstore

// Storage is the local persistence port the cart writes through. Adapters
// decide where the bytes live.
type Storage interface {
	Read(key string) ([]byte, error)
	Write(key string, data []byte) error
}

// MemoryStorage keeps persisted state in a map. Zero value is usable.
type MemoryStorage struct {
	data map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string][]byte)}
}

func (m *MemoryStorage) Read(key string) ([]byte, error) {
	if m.data == nil {
		return nil, nil
	}
	return m.data[key], nil
}

func (m *MemoryStorage) Write(key string, data []byte) error {
	if m.data == nil {
		m.data = make(map[string][]byte)
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	m.data[key] = stored
	return nil
}
