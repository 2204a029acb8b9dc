package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/threat0512/HealthFactAI/internal/core/domain/user"
	"github.com/threat0512/HealthFactAI/internal/core/ports"
	"github.com/threat0512/HealthFactAI/internal/infrastructure/db"
)

// UserRepository implements the user repository interface
type UserRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(database *db.Database, logger *logrus.Logger) ports.UserRepository {
	return &UserRepository{
		db:     database,
		logger: logger,
	}
}

// Create creates a new user and fills in its generated ID.
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (username, password_hash, email, facts_learned)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.db.DB.QueryRowxContext(ctx, query,
		u.Username, u.PasswordHash, u.Email, u.FactsLearned).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"username": u.Username}).WithError(err).Error("db: failed to create user")
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"user_id": u.ID, "username": u.Username}).Info("db: user created")
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	var u user.User
	query := `
		SELECT id, username, password_hash, email, facts_learned, current_streak,
			   longest_streak, total_facts_count, last_activity_date, created_at, updated_at
		FROM users
		WHERE id = $1`

	err := r.db.DB.GetContext(ctx, &u, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			if r.logger != nil {
				r.logger.WithFields(logrus.Fields{"user_id": id}).Debug("db: user not found by ID")
			}
			return nil, fmt.Errorf("user with ID %d not found", id)
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"user_id": id}).WithError(err).Error("db: failed to get user by ID")
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return &u, nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	var u user.User
	query := `
		SELECT id, username, password_hash, email, facts_learned, current_streak,
			   longest_streak, total_facts_count, last_activity_date, created_at, updated_at
		FROM users
		WHERE username = $1`

	err := r.db.DB.GetContext(ctx, &u, query, username)
	if err != nil {
		if err == sql.ErrNoRows {
			if r.logger != nil {
				r.logger.WithFields(logrus.Fields{"username": username}).Debug("db: user not found by username")
			}
			return nil, fmt.Errorf("user %s not found", username)
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"username": username}).WithError(err).Error("db: failed to get user by username")
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return &u, nil
}

// ExistsUsername reports whether the username is already taken.
func (r *UserRepository) ExistsUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`

	if err := r.db.DB.GetContext(ctx, &exists, query, username); err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"username": username}).WithError(err).Error("db: failed to check username")
		}
		return false, fmt.Errorf("failed to check username: %w", err)
	}

	return exists, nil
}

// ExistsEmail reports whether the email is already registered.
func (r *UserRepository) ExistsEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	if err := r.db.DB.GetContext(ctx, &exists, query, email); err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"email": email}).WithError(err).Error("db: failed to check email")
		}
		return false, fmt.Errorf("failed to check email: %w", err)
	}

	return exists, nil
}

// UpdateProgress persists the learning-progress columns of a user.
func (r *UserRepository) UpdateProgress(ctx context.Context, u *user.User) error {
	query := `
		UPDATE users
		SET facts_learned = $2, current_streak = $3, longest_streak = $4,
			total_facts_count = $5, last_activity_date = $6, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.DB.ExecContext(ctx, query,
		u.ID, u.FactsLearned, u.CurrentStreak, u.LongestStreak,
		u.TotalFactsCount, u.LastActivityDate)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"user_id": u.ID}).WithError(err).Error("db: failed to update user progress")
		}
		return fmt.Errorf("failed to update user progress: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"user_id": u.ID}).WithError(err).Error("db: failed to get rows affected on update")
		}
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"user_id": u.ID}).Debug("db: progress update affected 0 rows - user not found")
		}
		return fmt.Errorf("user with ID %d not found", u.ID)
	}

	return nil
}
