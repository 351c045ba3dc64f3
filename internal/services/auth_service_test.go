package services

import (
	"testing"

	"moneta/internal/models"
	"moneta/internal/sessions"
	"moneta/internal/testutil"
)

func TestRegister(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuthService(db, sessions.NewStore())

		token, user, err := svc.Register("Alice", "alice@example.com", "secret-password", testutil.Float(5000), "")
		testutil.AssertNoError(t, err)

		if token == "" {
			t.Fatal("expected a session token")
		}
		if user.ID == 0 {
			t.Fatal("expected non-zero user ID")
		}
		if user.Email != "alice@example.com" {
			t.Errorf("expected email alice@example.com, got %s", user.Email)
		}
		if user.AccountType != models.AccountTypeIndividual {
			t.Errorf("expected default account type individual, got %s", user.AccountType)
		}
		if user.Password == "secret-password" {
			t.Error("expected password to be hashed")
		}
	})

	t.Run("group_account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuthService(db, sessions.NewStore())

		_, user, err := svc.Register("Family", "family@example.com", "secret-password", nil, models.AccountTypeGroup)
		testutil.AssertNoError(t, err)

		if !user.IsGroup() {
			t.Error("expected a group account")
		}
	})

	t.Run("normalizes_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuthService(db, sessions.NewStore())

		_, user, err := svc.Register("Bob", "Bob@Example.COM", "secret-password", nil, "")
		testutil.AssertNoError(t, err)

		if user.Email != "bob@example.com" {
			t.Errorf("expected lowercased email, got %s", user.Email)
		}
	})

	t.Run("missing_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuthService(db, sessions.NewStore())

		_, _, err := svc.Register("", "alice@example.com", "secret-password", nil, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, _, err = svc.Register("Alice", "alice@example.com", "", nil, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("duplicate_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		store := sessions.NewStore()
		svc := NewAuthService(db, store)

		_, _, err := svc.Register("Alice", "alice@example.com", "secret-password", nil, "")
		testutil.AssertNoError(t, err)
		issued := store.Len()

		_, _, err = svc.Register("Imposter", "alice@example.com", "other-password", nil, "")
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")

		// No row created, no token issued.
		var count int64
		db.Model(&models.User{}).Where("email = ?", "alice@example.com").Count(&count)
		if count != 1 {
			t.Errorf("expected 1 user row, got %d", count)
		}
		if store.Len() != issued {
			t.Errorf("expected %d tokens, got %d", issued, store.Len())
		}
	})
}

func TestLogin(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuthService(db, sessions.NewStore())
		user := testutil.CreateTestUser(t, db)

		token, got, err := svc.Login(user.Email, "password123")
		testutil.AssertNoError(t, err)

		if token == "" {
			t.Fatal("expected a session token")
		}
		if got.ID != user.ID {
			t.Errorf("expected user %d, got %d", user.ID, got.ID)
		}
	})

	t.Run("wrong_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuthService(db, sessions.NewStore())
		user := testutil.CreateTestUser(t, db)

		_, _, err := svc.Login(user.Email, "wrong-password")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("unknown_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuthService(db, sessions.NewStore())

		_, _, err := svc.Login("nobody@example.com", "password123")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("each_login_mints_new_token", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuthService(db, sessions.NewStore())
		user := testutil.CreateTestUser(t, db)

		first, _, err := svc.Login(user.Email, "password123")
		testutil.AssertNoError(t, err)
		second, _, err := svc.Login(user.Email, "password123")
		testutil.AssertNoError(t, err)

		if first == second {
			t.Error("expected distinct tokens per login")
		}

		// Both tokens remain valid.
		if _, err := svc.Resolve(first); err != nil {
			t.Errorf("first token no longer resolves: %v", err)
		}
		if _, err := svc.Resolve(second); err != nil {
			t.Errorf("second token no longer resolves: %v", err)
		}
	})
}

func TestResolve(t *testing.T) {
	t.Run("valid_token", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuthService(db, sessions.NewStore())

		token, user, err := svc.Register("Alice", "alice@example.com", "secret-password", nil, "")
		testutil.AssertNoError(t, err)

		got, err := svc.Resolve(token)
		testutil.AssertNoError(t, err)
		if got.ID != user.ID {
			t.Errorf("expected user %d, got %d", user.ID, got.ID)
		}
	})

	t.Run("unknown_token", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuthService(db, sessions.NewStore())

		_, err := svc.Resolve("not-a-token")
		testutil.AssertAppError(t, err, "UNAUTHORIZED")
	})
}
