package cryptox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "cryptox")
	if err != nil {
		panic(err)
	}

	if err := LoadPepper(filepath.Join(dir, "pepper")); err != nil {
		panic(err)
	}

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func TestHashPasswordFormat(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple", "secreto123"},
		{"symbols", "P@ssw0rd!#$%^&*()"},
		{"long", strings.Repeat("a", 100)},
		{"unicode", "contraseña-ñandú"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=19456,t=2,p=1$"))
			require.Len(t, strings.Split(hash, "$"), 6)

			require.NoError(t, VerifyPassword(tt.password, hash))
			require.False(t, NeedsRehash(hash))
		})
	}
}

func TestHashPasswordIsSalted(t *testing.T) {
	a, err := HashPassword("mismo-password")
	require.NoError(t, err)
	b, err := HashPassword("mismo-password")
	require.NoError(t, err)

	require.NotEqual(t, a, b)
	require.NoError(t, VerifyPassword("mismo-password", a))
	require.NoError(t, VerifyPassword("mismo-password", b))
}

func TestVerifyPasswordMismatch(t *testing.T) {
	hash, err := HashPassword("correcto")
	require.NoError(t, err)

	for _, wrong := range []string{"incorrecto", "Correcto", "correcto ", "", strings.Repeat("x", 10000)} {
		require.ErrorIs(t, VerifyPassword(wrong, hash), ErrMismatch)
	}
}

func TestVerifyPasswordDependsOnPepper(t *testing.T) {
	hash, err := HashPassword("secreto")
	require.NoError(t, err)

	original := Pepper()
	setPepper("otro-pepper")
	t.Cleanup(func() { setPepper(original) })

	require.ErrorIs(t, VerifyPassword("secreto", hash), ErrMismatch)
}

func TestVerifyPasswordLegacyBcrypt(t *testing.T) {
	raw, err := bcrypt.GenerateFromPassword([]byte("secreto"), 10)
	require.NoError(t, err)
	hash := string(raw)

	require.NoError(t, VerifyPassword("secreto", hash))
	require.ErrorIs(t, VerifyPassword("otro", hash), ErrMismatch)
	require.True(t, NeedsRehash(hash))
}

func TestVerifyPasswordInvalidFormat(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"plaintext", "secreto"},
		{"missing parts", "$argon2id$v=19$m=19456"},
		{"wrong version", "$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"bad parameters", "$argon2id$v=19$invalid$c2FsdA$aGFzaA"},
		{"bad salt", "$argon2id$v=19$m=19456,t=2,p=1$!!!$aGFzaA"},
		{"bad key", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$!!!"},
		{"truncated bcrypt", "$2b$10$short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, VerifyPassword("secreto", tt.hash), ErrUnknownFormat)
		})
	}
}

func TestLoadPepperPersists(t *testing.T) {
	original := Pepper()
	t.Cleanup(func() { setPepper(original) })

	path := filepath.Join(t.TempDir(), "nested", "pepper")
	require.NoError(t, LoadPepper(path))
	first := Pepper()
	require.NotEmpty(t, first)

	setPepper("")
	require.NoError(t, LoadPepper(path))
	require.Equal(t, first, Pepper())
}
