package utils

import (
	crand "crypto/rand"
	"fmt"
	"math/big"
	"math/rand"
	"strings"
	"time"

	"github.com/lottoops/unclaimed-tracker/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var firstNames = []string{
	"Maria", "Jose", "Ana", "Juan", "Rosa", "Mark", "Joy", "Paolo", "Grace", "Carlo",
	"Liza", "Ramon", "Jenny", "Noel", "Cristina", "Arnel", "Mylene", "Ronald", "Aileen", "Rey",
}

var lastNames = []string{
	"Santos", "Reyes", "Cruz", "Bautista", "Ocampo", "Garcia", "Mendoza", "Torres", "Flores", "Villanueva",
	"Ramos", "Castillo", "Aquino", "Navarro", "Dela Cruz", "Gonzales", "Lopez", "Rivera", "Salazar", "Domingo",
}

var betCodes = []string{"S2", "S3", "L2", "P3", "4D", "6/42", "6/45"}

func GenerateRandomName() string {
	return firstNames[rand.Intn(len(firstNames))] + " " + lastNames[rand.Intn(len(lastNames))]
}

func GenerateRandomRole() domain.Role {
	return domain.Roles[rand.Intn(len(domain.Roles))]
}

var digits = "0123456789"

// GenerateUsernameFromName turns "Maria Dela Cruz" into something like "mdelacruz42".
func GenerateUsernameFromName(fullName string) string {
	parts := strings.Fields(strings.ToLower(fullName))
	if len(parts) == 0 {
		return GenerateRandomID(6, 3)
	}

	username := parts[0][:1] + strings.Join(parts[1:], "")

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomName()
	username := GenerateUsernameFromName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Role:         GenerateRandomRole(),
		Status:       domain.UserStatusActive,
	}

	return user, nil
}

// GenerateRandomOTP returns six decimal digits from a cryptographic source.
func GenerateRandomOTP() string {
	n, err := crand.Int(crand.Reader, big.NewInt(1000000))
	if err != nil {
		return fmt.Sprintf("%06d", rand.Intn(1000000))
	}
	return fmt.Sprintf("%06d", n.Int64())
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	password := make([]rune, length)
	limit := big.NewInt(int64(len(letters)))
	for i := range password {
		n, err := crand.Int(crand.Reader, limit)
		if err != nil {
			password[i] = letters[rand.Intn(len(letters))]
			continue
		}
		password[i] = letters[n.Int64()]
	}
	return string(password)
}

func GenerateRandomID(letterLength int, digitLength int) string {
	id := make([]rune, letterLength+digitLength)
	for i := range id {
		if i < letterLength {
			id[i] = rune('A' + rand.Intn(26))
		} else {
			id[i] = rune(digits[rand.Intn(len(digits))])
		}
	}
	return string(id)
}

// GenerateRandomUnclaimed returns a record drawn within the last maxAgeDays days, assigned to one of
// collectors and areas. Both slices must be non-empty.
func GenerateRandomUnclaimed(collectors []string, areas []string, maxAgeDays int) *domain.UnclaimedRecord {
	if maxAgeDays < 1 {
		maxAgeDays = 1
	}
	draw := time.Now().Add(-time.Duration(rand.Intn(maxAgeDays*24)) * time.Hour).Truncate(time.Hour)

	bet := float64(rand.Intn(50)+1) * 10
	win := bet * float64(rand.Intn(400)+50)
	charge := win * 0.2

	rec := &domain.UnclaimedRecord{
		TransID:       GenerateRandomID(3, 9),
		TellerName:    GenerateRandomName(),
		BetNumber:     fmt.Sprintf("%03d", rand.Intn(1000)),
		BetCode:       betCodes[rand.Intn(len(betCodes))],
		DrawDate:      draw,
		BetAmount:     bet,
		WinAmount:     win,
		ChargeAmount:  charge,
		ModeOfPayment: "Cash",
		Collector:     collectors[rand.Intn(len(collectors))],
		Area:          areas[rand.Intn(len(areas))],
		Status:        domain.StatusUnclaimed,
	}
	rec.RecomputeNet()

	return rec
}
