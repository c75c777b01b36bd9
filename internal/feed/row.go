package feed

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Row is one line of a spreadsheet feed, keyed the way the sheet scripts name their columns.
type Row struct {
	TransCode    Text   `json:"transCode"`
	TellerName   Text   `json:"tellerName"`
	DrawTime     Text   `json:"drawTime"`
	BetNumber    Text   `json:"betNumber"`
	BetCode      Text   `json:"betCode"`
	BetAmount    Amount `json:"betAmount"`
	WinAmount    Amount `json:"winAmount"`
	Collector    Text   `json:"collector"`
	Status       Text   `json:"status"`
	Notification Text   `json:"notification"`
}

// Envelope is what every feed endpoint answers with.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Text accepts a JSON string, number or boolean. Sheets hand back numeric-looking
// cells such as bet numbers as numbers.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*t = ""
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
	default:
		*t = Text(b)
	}
	return nil
}

func (t Text) String() string {
	return string(t)
}

// Amount is a money cell. Anything that does not parse to a finite number decodes as 0.
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	raw := string(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*a = 0
			return nil
		}
		raw = s
	}
	*a = Amount(ParseAmount(raw))
	return nil
}

// ParseAmount parses a decimal cell value, returning 0 for blanks, garbage, NaN and infinities.
func ParseAmount(raw string) float64 {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if raw == "" {
		return 0
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
