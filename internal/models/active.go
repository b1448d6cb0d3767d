// internal/models/active.go
package models

// PickActive resolves which of candidates is "active". A requested id (from
// a query parameter) wins when it names a candidate; otherwise the stored
// pointer is used when it names a candidate. ok is false when neither does.
func PickActive[T any](requested, stored *ID[T], candidates []T, idOf func(T) ID[T]) (T, bool) {
	for _, want := range []*ID[T]{requested, stored} {
		if want == nil {
			continue
		}
		for _, c := range candidates {
			if idOf(c) == *want {
				return c, true
			}
		}
	}
	var zero T
	return zero, false
}

func SeasonIDOf(s Season) SeasonID    { return s.ID }
func SessionIDOf(s Session) SessionID { return s.ID }
func RoundIDOf(r Round) RoundID       { return r.ID }
