package domain

// State is the mutable mapping threaded through a pipeline run. Each stage
// receives the state accumulated by every prior stage on its path and returns
// the state with its own additions applied over it.
type State map[string]interface{}

func (s State) Clone() State {
	if s == nil {
		return State{}
	}
	out := make(State, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// String returns the value under key when it is a non-empty string.
func (s State) String(key string) (string, bool) {
	v, ok := s[key].(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// StringOr returns the string under key, or fallback when absent or empty.
func (s State) StringOr(key, fallback string) string {
	if v, ok := s.String(key); ok {
		return v
	}
	return fallback
}

func (s State) Bool(key string) bool {
	v, _ := s[key].(bool)
	return v
}

// Int tolerates the numeric representations that survive a JSON round trip.
func (s State) Int(key string) (int, bool) {
	switch v := s[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func (s State) IntOr(key string, fallback int) int {
	if v, ok := s.Int(key); ok {
		return v
	}
	return fallback
}

// Videos returns the video list under key, substituting an empty list when the
// key is missing or holds something that is not a video list.
func (s State) Videos(key string) []*VideoRecord {
	switch v := s[key].(type) {
	case []*VideoRecord:
		return v
	case []VideoRecord:
		out := make([]*VideoRecord, len(v))
		for i := range v {
			out[i] = &v[i]
		}
		return out
	default:
		return nil
	}
}

// Strings returns the string slice under key, or nil when absent or malformed.
func (s State) Strings(key string) []string {
	switch v := s[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			str, ok := item.(string)
			if !ok {
				return nil
			}
			out = append(out, str)
		}
		return out
	default:
		return nil
	}
}
