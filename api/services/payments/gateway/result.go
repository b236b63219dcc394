package gateway

// ResultCodeOk is the messages.resultCode of an accepted request.
const ResultCodeOk = "Ok"

// Outcome tags a Result.
type Outcome int

const (
	// OutcomeUnreachable covers transport errors, non-2xx statuses and undecodable bodies.
	OutcomeUnreachable Outcome = iota
	// OutcomeRejected means the gateway answered with a non-Ok result code.
	OutcomeRejected
	// OutcomeOK means the gateway answered with resultCode "Ok".
	OutcomeOK
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeRejected:
		return "rejected"
	default:
		return "unreachable"
	}
}

// Message is one entry of messages.message[].
type Message struct {
	Code string `json:"code"`
	Text string `json:"text"`
}

// Messages is the messages object shared by every response envelope.
type Messages struct {
	ResultCode string    `json:"resultCode"`
	Message    []Message `json:"message"`
}

// Result is decoded once at the client boundary: Ok(payload), Rejected(code, messages) or Unreachable.
// Payload is also populated on rejection when the body carried one.
type Result[T any] struct {
	Outcome  Outcome
	Payload  T
	Messages []Message
}

func OK[T any](payload T, msgs []Message) Result[T] {
	return Result[T]{Outcome: OutcomeOK, Payload: payload, Messages: msgs}
}

func Rejected[T any](payload T, msgs []Message) Result[T] {
	return Result[T]{Outcome: OutcomeRejected, Payload: payload, Messages: msgs}
}

func Unreachable[T any]() Result[T] {
	return Result[T]{Outcome: OutcomeUnreachable}
}

func (r Result[T]) IsOK() bool          { return r.Outcome == OutcomeOK }
func (r Result[T]) IsRejected() bool    { return r.Outcome == OutcomeRejected }
func (r Result[T]) IsUnreachable() bool { return r.Outcome == OutcomeUnreachable }

// Code returns the first message code, e.g. "E00040".
func (r Result[T]) Code() string {
	if len(r.Messages) == 0 {
		return ""
	}
	return r.Messages[0].Code
}

// Text returns the first message text verbatim, or "Unknown Error" when none was sent.
func (r Result[T]) Text() string {
	if len(r.Messages) == 0 || r.Messages[0].Text == "" {
		return "Unknown Error"
	}
	return r.Messages[0].Text
}
