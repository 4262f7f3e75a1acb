package postgres

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/orderdesk/accounts-api/internal/core/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := SeedRoles(db, domain.RoleAdmin, domain.RoleClient); err != nil {
		t.Fatalf("seed roles: %v", err)
	}
	return db
}

func mustRole(t *testing.T, roles *RoleRepository, name string) domain.Role {
	t.Helper()
	role, err := roles.FindByName(context.Background(), name)
	if err != nil {
		t.Fatalf("find role %s: %v", name, err)
	}
	return *role
}

func newUser(username, email string, roles ...domain.Role) *domain.User {
	u := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
		Enabled:      true,
		Roles:        roles,
	}
	u.PrepareForInsert(time.Now().UTC())
	return u
}

func TestUserRepository_CreateRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	roles := NewRoleRepository(db)

	client := mustRole(t, roles, domain.RoleClient)
	created, err := users.Create(context.Background(), newUser("alice", "alice@x.com", client))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if len(created.Roles) != 1 || created.Roles[0].Name != domain.RoleClient {
		t.Fatalf("expected eager role set, got %+v", created.Roles)
	}

	found, ok, err := users.FindByID(context.Background(), created.ID)
	if err != nil || !ok {
		t.Fatalf("find by id: ok=%v err=%v", ok, err)
	}
	if found.Username != "alice" || !found.Enabled {
		t.Fatalf("unexpected user: %+v", found)
	}
	if !found.SameIdentity(created) {
		t.Fatalf("expected identical identity across loads")
	}
	if found.CreatedAt.IsZero() || !found.CreatedAt.Equal(found.UpdatedAt) {
		t.Fatalf("expected CreatedAt == UpdatedAt at creation, got %v / %v", found.CreatedAt, found.UpdatedAt)
	}
}

func TestUserRepository_FindByID_Absent(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)

	user, ok, err := users.FindByID(context.Background(), 404)
	if err != nil {
		t.Fatalf("absent lookup must not error: %v", err)
	}
	if ok || user != nil {
		t.Fatalf("expected explicit miss, got ok=%v user=%+v", ok, user)
	}
}

func TestUserRepository_DuplicateKeysMapped(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	roles := NewRoleRepository(db)
	client := mustRole(t, roles, domain.RoleClient)

	if _, err := users.Create(context.Background(), newUser("bob", "bob@x.com", client)); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Duplicate username reaching the constraint maps to ErrUsernameTaken.
	if _, err := users.Create(context.Background(), newUser("bob", "other@x.com", client)); err != domain.ErrUsernameTaken {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	// Duplicate email with a fresh username maps to ErrEmailTaken.
	if _, err := users.Create(context.Background(), newUser("robert", "bob@x.com", client)); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	all, err := users.FindAll(context.Background())
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected exactly one row after rejected inserts, got %d", len(all))
	}
}

func TestUserRepository_ExistsChecks(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	roles := NewRoleRepository(db)
	client := mustRole(t, roles, domain.RoleClient)

	if _, err := users.Create(context.Background(), newUser("carol", "carol@x.com", client)); err != nil {
		t.Fatalf("create: %v", err)
	}

	cases := []struct {
		check func() (bool, error)
		want  bool
	}{
		{func() (bool, error) { return users.ExistsByUsername(context.Background(), "carol") }, true},
		{func() (bool, error) { return users.ExistsByUsername(context.Background(), "nobody") }, false},
		{func() (bool, error) { return users.ExistsByEmail(context.Background(), "carol@x.com") }, true},
		{func() (bool, error) { return users.ExistsByEmail(context.Background(), "nobody@x.com") }, false},
	}
	for i, tc := range cases {
		got, err := tc.check()
		if err != nil {
			t.Fatalf("case %d: %v", i, err)
		}
		if got != tc.want {
			t.Fatalf("case %d: expected %v, got %v", i, tc.want, got)
		}
	}
}

func TestUserRepository_FindAllOrderedWithRoles(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	roles := NewRoleRepository(db)
	client := mustRole(t, roles, domain.RoleClient)
	admin := mustRole(t, roles, domain.RoleAdmin)

	for _, u := range []*domain.User{
		newUser("u1", "u1@x.com", client),
		newUser("u2", "u2@x.com", admin, client),
		newUser("u3", "u3@x.com"),
	} {
		if _, err := users.Create(context.Background(), u); err != nil {
			t.Fatalf("create %s: %v", u.Username, err)
		}
	}

	all, err := users.FindAll(context.Background())
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 users, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].ID >= all[i].ID {
			t.Fatalf("expected ascending id order")
		}
	}
	if len(all[1].Roles) != 2 {
		t.Fatalf("expected both roles loaded for u2, got %+v", all[1].Roles)
	}
	if len(all[2].Roles) != 0 {
		t.Fatalf("expected no roles for u3, got %+v", all[2].Roles)
	}
}

func TestUserRepository_RoleMembershipBothDirections(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	roles := NewRoleRepository(db)
	client := mustRole(t, roles, domain.RoleClient)
	admin := mustRole(t, roles, domain.RoleAdmin)

	created, err := users.Create(context.Background(), newUser("dora", "dora@x.com", client))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Attach: the user's role set and the role's member view must agree.
	created.AddRole(admin)
	created.PrepareForUpdate(time.Now().UTC())
	updated, err := users.Update(context.Background(), created)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.HasRole(domain.RoleAdmin) {
		t.Fatalf("expected admin role attached")
	}
	members, err := users.ListByRole(context.Background(), domain.RoleAdmin)
	if err != nil {
		t.Fatalf("list by role: %v", err)
	}
	if len(members) != 1 || members[0].Username != "dora" {
		t.Fatalf("expected dora in admin member view, got %+v", members)
	}

	// Detach: both sides empty again.
	updated.RemoveRole(domain.RoleAdmin)
	updated.PrepareForUpdate(time.Now().UTC())
	final, err := users.Update(context.Background(), updated)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if final.HasRole(domain.RoleAdmin) {
		t.Fatalf("expected admin role detached")
	}
	members, err = users.ListByRole(context.Background(), domain.RoleAdmin)
	if err != nil {
		t.Fatalf("list by role: %v", err)
	}
	if len(members) != 0 {
		t.Fatalf("expected empty admin member view, got %+v", members)
	}

	// The client membership was untouched throughout.
	members, err = users.ListByRole(context.Background(), domain.RoleClient)
	if err != nil {
		t.Fatalf("list by role: %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("expected client membership preserved, got %+v", members)
	}
}

func TestUserRepository_Update_MissingUser(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)

	ghost := newUser("ghost", "ghost@x.com")
	ghost.ID = 123
	if _, err := users.Update(context.Background(), ghost); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestRoleRepository_SeedAndLookup(t *testing.T) {
	db := setupTestDB(t)
	roles := NewRoleRepository(db)

	// Seeding again is a no-op.
	if err := SeedRoles(db, domain.RoleAdmin, domain.RoleClient); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	all, err := roles.FindAll(context.Background())
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 roles after reseed, got %d", len(all))
	}

	role, err := roles.FindByName(context.Background(), domain.RoleAdmin)
	if err != nil {
		t.Fatalf("find by name: %v", err)
	}
	if role.ID == 0 || role.Name != domain.RoleAdmin {
		t.Fatalf("unexpected role: %+v", role)
	}

	if _, err := roles.FindByName(context.Background(), "ROLE_GHOST"); err != domain.ErrRoleNotFound {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
}
