package stats

import (
	"errors"
	"fmt"

	"github.com/okian/standings/internal/domain/model"
)

// ErrUnknownTrend is returned when a trend name cannot be read back.
var ErrUnknownTrend = errors.New("unknown trend")

// TrendKind classifies the change between a team's last two submissions.
type TrendKind int

// Trend kinds.
const (
	// TrendNone means fewer than two submissions.
	TrendNone TrendKind = iota
	TrendUp
	TrendSame
	TrendDown
)

func (k TrendKind) String() string {
	switch k {
	case TrendUp:
		return "up"
	case TrendSame:
		return "same"
	case TrendDown:
		return "down"
	default:
		return "none"
	}
}

// MarshalText lets trends appear by name in JSON.
func (k TrendKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText reads the names written by MarshalText.
func (k *TrendKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "none":
		*k = TrendNone
	case "up":
		*k = TrendUp
	case "same":
		*k = TrendSame
	case "down":
		*k = TrendDown
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTrend, text)
	}
	return nil
}

// Trend is the direction and size of the last point change.
type Trend struct {
	Kind TrendKind `json:"kind"`
	Gain int       `json:"gain"`
}

// TrendOf compares the points of the last two submissions.
func TrendOf(rec model.TeamRecord) Trend {
	n := len(rec.Submissions)
	if n < 2 {
		return Trend{Kind: TrendNone}
	}
	gain := rec.Submissions[n-1].Points - rec.Submissions[n-2].Points
	switch {
	case gain > 0:
		return Trend{Kind: TrendUp, Gain: gain}
	case gain == 0:
		return Trend{Kind: TrendSame}
	default:
		return Trend{Kind: TrendDown, Gain: gain}
	}
}
