package reactions

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

var (
	QueryTimeoutDuration = time.Second * 5
)

// Value is the reaction a user attaches to a review. It is stored as +1/-1.
type Value int16

const (
	Like Value = 1
	Hate Value = -1
)

func (v Value) Valid() bool {
	return v == Like || v == Hate
}

func (v Value) String() string {
	switch v {
	case Like:
		return "LIKE"
	case Hate:
		return "HATE"
	default:
		return fmt.Sprintf("Value(%d)", int16(v))
	}
}

// ParseValue accepts "LIKE"/"HATE" in any case, or the stored forms "1"/"-1".
func ParseValue(s string) (Value, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LIKE", "1":
		return Like, nil
	case "HATE", "-1":
		return Hate, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidValue, s)
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidValue, int16(v))
	}
	return json.Marshal(v.String())
}

func (v *Value) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		var n int16
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidValue, string(b))
		}
		s = fmt.Sprint(n)
	}
	parsed, err := ParseValue(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

type Reaction struct {
	UserID    int64     `json:"userId"`
	ReviewID  int64     `json:"reviewId"`
	Value     Value     `json:"reactionValue"`
	CreatedAt time.Time `json:"createdAt"`
}

// Tally is the count of each reaction value on one review.
type Tally struct {
	ReviewID int64 `json:"reviewId"`
	Likes    int   `json:"likes"`
	Hates    int   `json:"hates"`
}
