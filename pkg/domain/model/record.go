package model

// Record is an ordered mapping of string keys to values.
//
// Nested mappings are held as *Record so their key order survives a load/save
// round trip. Overwriting an existing key keeps its position; new keys are
// appended at the end.
type Record struct {
	keys   []string
	values map[string]any
}

// NewRecord creates an empty record
func NewRecord() *Record {
	return &Record{values: make(map[string]any)}
}

// Len returns the number of keys
func (r *Record) Len() int {
	return len(r.keys)
}

// Keys returns the keys in insertion order
func (r *Record) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// Get returns the value stored under key
func (r *Record) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// GetString returns the value under key if it is a string
func (r *Record) GetString(key string) (string, bool) {
	v, ok := r.values[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetRecord returns the nested record under key, if the value is a mapping
func (r *Record) GetRecord(key string) (*Record, bool) {
	v, ok := r.values[key]
	if !ok {
		return nil, false
	}
	nested, ok := v.(*Record)
	return nested, ok
}

// Set stores value under key
func (r *Record) Set(key string, value any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Delete removes key, keeping the order of the remaining keys
func (r *Record) Delete(key string) {
	if _, ok := r.values[key]; !ok {
		return
	}
	delete(r.values, key)
	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i:i], r.keys[i+1:]...)
			break
		}
	}
}

// Merge copies every key of src into the nested record stored under key.
// A missing or non-mapping value under key is replaced by a new record.
func (r *Record) Merge(key string, src *Record) {
	dst, ok := r.GetRecord(key)
	if !ok {
		dst = NewRecord()
		r.Set(key, dst)
	}
	for _, k := range src.keys {
		dst.Set(k, src.values[k])
	}
}

// URL returns the record's "url" field when it is a string
func (r *Record) URL() (string, bool) {
	return r.GetString("url")
}
