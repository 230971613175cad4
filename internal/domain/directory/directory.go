package directory

import (
	"errors"
	"strings"
	"sync"
	"time"

	"smartleave/internal/domain/auth"
)

var (
	ErrDuplicateID    = errors.New("employee id already registered")
	ErrDuplicateEmail = errors.New("email already registered")
)

// Directory is the authoritative in-memory collection of users. It is the
// only component allowed to hold the user records; everyone else works with
// value snapshots or goes through the narrow operation set below.
type Directory struct {
	mu    sync.Mutex
	users []*User
	byID  map[int]*User
}

func New() *Directory {
	return &Directory{byID: map[int]*User{}}
}

// Register adds a user. The password is stored as a bcrypt hash. A
// totalAllowed of zero falls back to DefaultAnnualLeave with a full balance.
func (d *Directory) Register(empID int, name, email, password string, role Role, balance, totalAllowed int) (User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return User{}, err
	}
	if totalAllowed <= 0 {
		totalAllowed = DefaultAnnualLeave
		balance = DefaultAnnualLeave
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.byID[empID]; exists {
		return User{}, ErrDuplicateID
	}
	normalized := strings.ToLower(strings.TrimSpace(email))
	for _, u := range d.users {
		if strings.ToLower(u.Email) == normalized {
			return User{}, ErrDuplicateEmail
		}
	}

	user := &User{
		EmpID:        empID,
		Name:         name,
		Email:        strings.TrimSpace(email),
		PasswordHash: hash,
		Role:         role,
		LeaveBalance: balance,
		TotalAllowed: totalAllowed,
	}
	d.users = append(d.users, user)
	d.byID[empID] = user
	return *user, nil
}

// Authenticate resolves a user by case-insensitive email, bcrypt password
// check and role match. A successful login stamps LastLogin. The boolean is
// the only failure signal; callers render their own message.
func (d *Directory) Authenticate(email, password string, role Role) (User, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	normalized := strings.ToLower(strings.TrimSpace(email))
	for _, u := range d.users {
		if strings.ToLower(u.Email) != normalized || u.Role != role {
			continue
		}
		if auth.CheckPassword(u.PasswordHash, password) != nil {
			return User{}, false
		}
		now := time.Now()
		u.LastLogin = &now
		return *u, true
	}
	return User{}, false
}

// ByID returns a snapshot of the user with the given employee id.
func (d *Directory) ByID(empID int) (User, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.byID[empID]
	if !ok {
		return User{}, false
	}
	return *u, true
}

func (d *Directory) CountByRole(role Role) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	count := 0
	for _, u := range d.users {
		if u.Role == role {
			count++
		}
	}
	return count
}

// Employees returns snapshots of all employee users in insertion order.
func (d *Directory) Employees() []User {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []User
	for _, u := range d.users {
		if u.Role == RoleEmployee {
			out = append(out, *u)
		}
	}
	return out
}

// Users returns snapshots of every registered user in insertion order.
func (d *Directory) Users() []User {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]User, 0, len(d.users))
	for _, u := range d.users {
		out = append(out, *u)
	}
	return out
}

// Balance reports the current leave balance for the user.
func (d *Directory) Balance(empID int) (int, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.byID[empID]
	if !ok {
		return 0, false
	}
	return u.LeaveBalance, true
}

// Debit reserves days from the user's balance. The ledger validates
// sufficiency before calling; a debit that would go negative is refused here
// as well so the balance invariant can never break.
func (d *Directory) Debit(empID, days int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.byID[empID]
	if !ok || days < 0 || u.LeaveBalance < days {
		return false
	}
	u.LeaveBalance -= days
	return true
}

// Credit restores previously debited days. The restored amount can never
// exceed the allowance because every credit matches an earlier debit.
func (d *Directory) Credit(empID, days int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.byID[empID]
	if !ok || days < 0 {
		return false
	}
	u.LeaveBalance += days
	if u.LeaveBalance > u.TotalAllowed {
		u.LeaveBalance = u.TotalAllowed
	}
	return true
}

// AwardBadge increments the user's badge count.
func (d *Directory) AwardBadge(empID int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.byID[empID]
	if !ok {
		return false
	}
	u.Badges++
	return true
}
