package handlers

// migrate creates the tables the service needs if they do not exist yet.
func migrate() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT PRIMARY KEY AUTO_INCREMENT,
			username VARCHAR(50) NOT NULL,
			password_hash VARCHAR(100) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uniq_username (username)
		)`,
		`CREATE TABLE IF NOT EXISTS lists (
			id BIGINT PRIMARY KEY AUTO_INCREMENT,
			title VARCHAR(100) NOT NULL,
			description TEXT,
			user_id BIGINT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			KEY idx_lists_user (user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id BIGINT PRIMARY KEY AUTO_INCREMENT,
			title VARCHAR(100) NOT NULL,
			description TEXT,
			due_date DATE NULL,
			is_complete TINYINT(1) NOT NULL DEFAULT 0,
			list_id BIGINT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			KEY idx_tasks_list (list_id)
		)`,
	}
	for _, ddl := range statements {
		if _, err := db.Exec(ddl); err != nil {
			return err
		}
	}
	return nil
}
