package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/lottoops/unclaimed-tracker/backend/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestGenerateRandomOTP(t *testing.T) {
	for i := 0; i < 50; i++ {
		otp := GenerateRandomOTP()
		require.Len(t, otp, 6)
		require.Empty(t, strings.Trim(otp, digits))
	}
}

func TestGenerateRandomPassword(t *testing.T) {
	require.Len(t, []rune(GenerateRandomPassword(12)), 12)
	require.Empty(t, GenerateRandomPassword(0))
}

func TestGenerateUsernameFromName(t *testing.T) {
	username := GenerateUsernameFromName("Maria Dela Cruz")
	require.True(t, strings.HasPrefix(username, "mdelacruz"), username)
	require.LessOrEqual(t, len(username), len("mdelacruz")+3)
}

func TestGenerateRandomUnclaimed(t *testing.T) {
	rec := GenerateRandomUnclaimed([]string{"Ben"}, []string{"North"}, 30)
	require.Equal(t, "Ben", rec.Collector)
	require.Equal(t, "North", rec.Area)
	require.Equal(t, domain.StatusUnclaimed, rec.Status)
	require.InDelta(t, rec.WinAmount-rec.ChargeAmount, rec.NetAmount, 0.001)
	require.False(t, rec.DrawDate.After(time.Now()))
	require.NoError(t, ValidateUnclaimedAmounts(rec))
}

func TestRegisterValidations(t *testing.T) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	english := en.New()
	trans, _ := ut.New(english, english).GetTranslator("en")
	require.NoError(t, RegisterValidations(validate, trans))

	type req struct {
		Role   string `validate:"required,role"`
		Status string `validate:"omitempty,unclaimed_status"`
	}

	require.NoError(t, validate.Struct(req{Role: "cashier", Status: "Collected"}))
	require.NoError(t, validate.Struct(req{Role: "General Manager"}))

	err := validate.Struct(req{Role: "owner"})
	require.Error(t, err)
	msg := err.(validator.ValidationErrors)[0].Translate(trans)
	require.Equal(t, "Role must be a known role", msg)

	require.Error(t, validate.Struct(req{Role: "admin", Status: "Paid"}))
}

func TestValidateUnclaimedAmounts(t *testing.T) {
	require.NoError(t, ValidateUnclaimedAmounts(&domain.UnclaimedRecord{WinAmount: 100, ChargeAmount: 20}))
	require.Error(t, ValidateUnclaimedAmounts(&domain.UnclaimedRecord{WinAmount: 100, ChargeAmount: 200}))
	require.Error(t, ValidateUnclaimedAmounts(&domain.UnclaimedRecord{BetAmount: -1}))
}

func TestValidateDrawDate(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, ValidateDrawDate(now.Add(-48*time.Hour), now))
	require.NoError(t, ValidateDrawDate(now.Add(2*time.Hour), now))
	require.Error(t, ValidateDrawDate(now.Add(72*time.Hour), now))
	require.Error(t, ValidateDrawDate(time.Time{}, now))
}

func TestValidatePeriod(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, ValidatePeriod(start, start.AddDate(0, 1, 0)))
	require.Error(t, ValidatePeriod(start, start))
	require.Error(t, ValidatePeriod(start, start.AddDate(2, 0, 0)))
}

func TestValidateStatusChange(t *testing.T) {
	tests := []struct {
		from, to domain.UnclaimedStatus
		ok       bool
	}{
		{domain.StatusUnclaimed, domain.StatusUncollected, true},
		{domain.StatusUnclaimed, domain.StatusCollected, true},
		{domain.StatusUncollected, domain.StatusCollected, true},
		{domain.StatusUncollected, domain.StatusCancelled, true},
		{domain.StatusCollected, domain.StatusUnclaimed, false},
		{domain.StatusCancelled, domain.StatusUnclaimed, false},
		{domain.StatusUncollected, domain.StatusUnclaimed, false},
		{domain.StatusCollected, domain.StatusCollected, true},
	}

	for _, tt := range tests {
		err := ValidateStatusChange(tt.from, tt.to)
		if tt.ok {
			require.NoError(t, err, "%s -> %s", tt.from, tt.to)
		} else {
			require.Error(t, err, "%s -> %s", tt.from, tt.to)
		}
	}
}
