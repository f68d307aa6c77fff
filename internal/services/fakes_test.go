package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"sakay_backend/internal/models"
	"sakay_backend/internal/repositories"
)

// In-memory repository fakes. The db argument is ignored; service logic is
// what is under test here.

type fakeUserRepo struct {
	users   map[string]*models.User // keyed by email
	nextID  int
	failAll error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (f *fakeUserRepo) FindByID(_ *gorm.DB, id string) (*models.User, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) FindByEmail(_ *gorm.DB, email string) (*models.User, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) ExistsByEmailOrUsername(_ *gorm.DB, email, username string) (bool, error) {
	if f.failAll != nil {
		return false, f.failAll
	}
	for _, u := range f.users {
		if u.Email == email || u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) Create(_ *gorm.DB, user *models.User) error {
	if f.failAll != nil {
		return f.failAll
	}
	for _, u := range f.users {
		if u.Email == user.Email || u.Username == user.Username {
			return repositories.ErrUserAlreadyExists
		}
	}
	f.nextID++
	user.ID = fmt.Sprintf("user-%d", f.nextID)
	user.CreatedAt = time.Now()
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserRepo) Update(_ *gorm.DB, user *models.User) error {
	for email, u := range f.users {
		if u.ID == user.ID {
			delete(f.users, email)
			f.users[user.Email] = user
			return nil
		}
	}
	return repositories.ErrUserNotFound
}

func (f *fakeUserRepo) UpdateStatus(_ *gorm.DB, userID string, status models.UserStatus) error {
	for _, u := range f.users {
		if u.ID == userID {
			u.Status = status
			return nil
		}
	}
	return repositories.ErrUserNotFound
}

func (f *fakeUserRepo) UpdatePassword(_ *gorm.DB, userID, passwordHash string) error {
	for _, u := range f.users {
		if u.ID == userID {
			u.PasswordHash = passwordHash
			return nil
		}
	}
	return repositories.ErrUserNotFound
}

func (f *fakeUserRepo) UpdatePreferences(_ *gorm.DB, userID string, prefs models.Preferences) error {
	for _, u := range f.users {
		if u.ID == userID {
			u.Preferences = prefs
			return nil
		}
	}
	return repositories.ErrUserNotFound
}

func (f *fakeUserRepo) IncrementTrips(_ *gorm.DB, email string) error {
	if u, ok := f.users[email]; ok {
		u.TripsTaken++
		return nil
	}
	return repositories.ErrUserNotFound
}

func (f *fakeUserRepo) Delete(_ *gorm.DB, userID string) error {
	for email, u := range f.users {
		if u.ID == userID {
			delete(f.users, email)
			return nil
		}
	}
	return repositories.ErrUserNotFound
}

func (f *fakeUserRepo) FindWithFilter(_ *gorm.DB, criteria repositories.UserFilter) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		if criteria.Status != "" && u.Status != criteria.Status {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) CountAll(_ *gorm.DB) (int64, error) {
	return int64(len(f.users)), nil
}

type fakeReportRepo struct {
	reports map[string]*models.Report
	nextID  int
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: map[string]*models.Report{}}
}

func (f *fakeReportRepo) Create(_ *gorm.DB, report *models.Report) error {
	f.nextID++
	report.ID = fmt.Sprintf("report-%d", f.nextID)
	f.reports[report.ID] = report
	return nil
}

func (f *fakeReportRepo) FindByID(_ *gorm.DB, id string) (*models.Report, error) {
	if r, ok := f.reports[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, repositories.ErrReportNotFound
}

func (f *fakeReportRepo) FindAll(_ *gorm.DB, status models.ReportStatus) ([]models.Report, error) {
	var out []models.Report
	for _, r := range f.reports {
		if status != "" && r.Status != status {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeReportRepo) UpdateStatus(_ *gorm.DB, id string, status models.ReportStatus) error {
	if r, ok := f.reports[id]; ok {
		r.Status = status
		return nil
	}
	return repositories.ErrReportNotFound
}

func (f *fakeReportRepo) CountByStatus(_ *gorm.DB, status models.ReportStatus) (int64, error) {
	var n int64
	for _, r := range f.reports {
		if r.Status == status {
			n++
		}
	}
	return n, nil
}
