package lookup

// Kind classifies how a lookup, or a single attempt of it, ended.
type Kind int

const (
	KindSuccess Kind = iota
	KindNotFound
	KindRateLimited
	KindTransport
	KindMalformed
	KindCanceled
	KindExhausted
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindNotFound:
		return "not_found"
	case KindRateLimited:
		return "rate_limited"
	case KindTransport:
		return "transport"
	case KindMalformed:
		return "malformed"
	case KindCanceled:
		return "canceled"
	case KindExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Retryable reports whether another attempt may follow an attempt that ended
// with k. Rate limiting, transport failures and malformed bodies are treated
// as transient; everything else ends the lookup.
func (k Kind) Retryable() bool {
	switch k {
	case KindRateLimited, KindTransport, KindMalformed:
		return true
	case KindSuccess, KindNotFound, KindCanceled, KindExhausted:
		return false
	default:
		return false
	}
}
