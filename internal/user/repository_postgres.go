package user

import (
	"database/sql"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	getUserByIDQuery = `
		SELECT "userId", email, password, "firstName", "lastName", phone, wishlist, "createdAt", "updatedAt"
		FROM users
		WHERE "userId" = $1
	`
	getUserByEmailQuery = `
		SELECT "userId", email, password, "firstName", "lastName", phone, wishlist, "createdAt", "updatedAt"
		FROM users
		WHERE email = $1
	`
	createUserQuery = `
		INSERT INTO users (email, password, "firstName", "lastName", phone, "createdAt", "updatedAt")
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING "userId"
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(id int) (User, error) {
	return r.getOne(getUserByIDQuery, id)
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	return r.getOne(getUserByEmailQuery, email)
}

func (r *PostgresRepository) getOne(query string, arg interface{}) (User, error) {
	var (
		u         User
		firstName sql.NullString
		lastName  sql.NullString
		phone     sql.NullString
		wishlist  pq.Int64Array
		createdAt sql.NullString
		updatedAt sql.NullString
	)
	err := r.db.QueryRow(query, arg).Scan(&u.ID, &u.Email, &u.Password,
		&firstName, &lastName, &phone, &wishlist, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	if firstName.Valid {
		u.FirstName = firstName.String
	}
	if lastName.Valid {
		u.LastName = lastName.String
	}
	if phone.Valid {
		u.Phone = phone.String
	}
	for _, id := range wishlist {
		u.Wishlist = append(u.Wishlist, int(id))
	}
	if createdAt.Valid {
		u.CreatedAt = createdAt.String
	}
	if updatedAt.Valid {
		u.UpdatedAt = updatedAt.String
	}
	return u, nil
}

func (r *PostgresRepository) Create(u User) (User, error) {
	err := r.db.QueryRow(createUserQuery,
		u.Email, u.Password, u.FirstName, u.LastName, u.Phone, u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID)
	if err != nil {
		return User{}, err
	}
	return u, nil
}
