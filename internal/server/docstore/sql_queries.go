package docstore

const (
	createUser = `INSERT INTO users (uid, login, password_hash, name)
    VALUES ($1, $2, $3, $4)
    RETURNING uid, login, password_hash, name, created_at;`

	findUserByLogin = `SELECT uid, login, password_hash, name, created_at
    FROM users
    WHERE login = $1;`
)
