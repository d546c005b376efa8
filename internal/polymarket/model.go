package polymarket

import (
	"bytes"
	"encoding/json"

	"github.com/polycopy/Copy-Trading-Backend/internal/derive"
)

// FlexFloat decodes a JSON field that the data API reports inconsistently as
// either a number or a numeric string. Malformed values decode to 0 rather
// than failing the whole payload.
type FlexFloat float64

// UnmarshalJSON implements tolerant numeric decoding.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*f = 0
			return nil
		}
		*f = FlexFloat(derive.ParseNumeric(s))
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		*f = 0
		return nil
	}
	*f = FlexFloat(v)
	return nil
}

// LeaderboardRow is the raw wire shape of one data API leaderboard entry.
type LeaderboardRow struct {
	ProxyWallet   string    `json:"proxyWallet"`
	User          string    `json:"user"`
	UserName      string    `json:"userName"`
	ProfileImage  string    `json:"profileImage"`
	PnL           FlexFloat `json:"pnl"`
	Vol           FlexFloat `json:"vol"`
	VerifiedBadge bool      `json:"verifiedBadge"`
}

// Entry translates the wire row into the derivation engine's input shape.
// The proxy wallet is the stable account identity; the user field is a
// fallback some leaderboard categories use instead.
func (r LeaderboardRow) Entry() derive.LeaderboardEntry {
	address := r.ProxyWallet
	if address == "" {
		address = r.User
	}
	return derive.LeaderboardEntry{
		Address:      address,
		Username:     r.UserName,
		ProfileImage: r.ProfileImage,
		PnL:          float64(r.PnL),
		Vol:          float64(r.Vol),
		Verified:     r.VerifiedBadge,
	}
}
