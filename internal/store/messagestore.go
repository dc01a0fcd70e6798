package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path"

	"github.com/dg-guptadaksh/commway/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

type Config interface {
	DataDirectory() string
}

type messageStore struct {
	db *sqlx.DB
}

func New(config Config) (*messageStore, error) {
	dbName := path.Join(config.DataDirectory(), "messages.db")

	db, err := sqlx.Connect("sqlite3", "file:"+dbName)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	datastore := &messageStore{db}
	if err := datastore.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return datastore, nil
}

func (s *messageStore) Close() error {
	return s.db.Close()
}

func (s *messageStore) createTables() error {
	_, err := s.db.Exec(`create table if not exists message(
		ID             text not null primary key,
		CreatedAt      DATETIME not null,
		SenderEmail    text not null,
		RecipientEmail text not null,
		IntentTag      text not null,
		Subject        text not null,
		BodyContent    text not null,
		InternalTag    text null,
		Status         text not null default 'PENDING'
	)`)
	if err != nil {
		return fmt.Errorf("creating message table: %w", err)
	}
	return nil
}

// Create inserts a new message record. A colliding ID is a defined failure,
// never a silent overwrite; the row is durable before Create returns.
func (s *messageStore) Create(ctx context.Context, message *model.CanonicalMessage) error {
	res, err := s.db.NamedExecContext(ctx, `insert into message
		(ID, CreatedAt, SenderEmail, RecipientEmail, IntentTag, Subject, BodyContent, InternalTag, Status)
		values(:ID, :CreatedAt, :SenderEmail, :RecipientEmail, :IntentTag, :Subject, :BodyContent, :InternalTag, :Status)`, message)

	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return fmt.Errorf("inserting message %s: %w", message.ID, model.ErrorDuplicateMessage)
		}
		return fmt.Errorf("inserting message: %w", err)
	}
	if rows, err := res.RowsAffected(); rows != 1 {
		return fmt.Errorf("expected 1 row to be affected, got %d", rows)
	} else if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	return nil
}

// UpdateStatus moves a message to its terminal status. Updating a missing
// message returns (false, nil). Re-applying the current status is a no-op
// success; any other transition away from SENT or FAILED is rejected.
func (s *messageStore) UpdateStatus(ctx context.Context, id model.MessageID, status model.Status) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`update message set Status = ? where ID = ? and Status in (?, ?)`,
		status, id, model.StatusPending, status)
	if err != nil {
		return false, fmt.Errorf("updating status: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("getting rows affected: %w", err)
	}
	if rows == 1 {
		return true, nil
	}

	var current model.Status
	err = s.db.GetContext(ctx, &current, `select Status from message where ID = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking message status: %w", err)
	}
	return false, fmt.Errorf("message %s is %s, cannot move to %s: %w", id, current, status, model.ErrorInvalidStatusTransition)
}

func (s *messageStore) Get(ctx context.Context, id model.MessageID) (*model.CanonicalMessage, error) {
	message := &model.CanonicalMessage{}
	err := s.db.GetContext(ctx, message, `select * from message where ID = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrorMessageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching message: %w", err)
	}
	return message, nil
}
