package rank

// ValidateOrder reports whether updated may sit between prev and next.
// A nil prev means "top of the group", a nil next means "bottom".
func ValidateOrder(prev, next *Rank, updated Rank) bool {
	switch {
	case prev == nil && next == nil:
		return true
	case prev == nil:
		return Compare(updated, *next) < 0
	case next == nil:
		return Compare(updated, *prev) > 0
	default:
		return Compare(*prev, updated) < 0 && Compare(updated, *next) < 0
	}
}
