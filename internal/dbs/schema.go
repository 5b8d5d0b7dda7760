package dbs

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT AUTO_INCREMENT PRIMARY KEY,
		username      VARCHAR(150) NOT NULL UNIQUE,
		email         VARCHAR(254) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		date_joined   DATETIME(6) NOT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS user_profiles (
		id                 BIGINT AUTO_INCREMENT PRIMARY KEY,
		user_id            BIGINT NOT NULL UNIQUE,
		bio                TEXT NOT NULL,
		preferred_language VARCHAR(50) NOT NULL DEFAULT '',
		skill_level        VARCHAR(20) NOT NULL DEFAULT '',
		updated_at         DATETIME(6) NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS problems (
		id             BIGINT AUTO_INCREMENT PRIMARY KEY,
		title          VARCHAR(255) NOT NULL UNIQUE,
		slug           VARCHAR(255) NOT NULL,
		description    TEXT NOT NULL,
		difficulty     VARCHAR(10) NOT NULL,
		related_topics VARCHAR(500) NOT NULL DEFAULT '',
		created_at     DATETIME(6) NOT NULL,
		INDEX idx_problems_slug (slug)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS chat_messages (
		id           BIGINT AUTO_INCREMENT PRIMARY KEY,
		user_id      BIGINT NOT NULL,
		message_type VARCHAR(10) NOT NULL,
		content      MEDIUMTEXT NOT NULL,
		timestamp    DATETIME(6) NOT NULL,
		INDEX idx_chat_messages_user (user_id, timestamp),
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS uploaded_files (
		id          BIGINT AUTO_INCREMENT PRIMARY KEY,
		user_id     BIGINT NOT NULL,
		file        VARCHAR(255) NOT NULL,
		file_name   VARCHAR(255) NOT NULL,
		file_type   VARCHAR(100) NOT NULL,
		uploaded_at DATETIME(6) NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS code_submissions (
		id            BIGINT AUTO_INCREMENT PRIMARY KEY,
		user_id       BIGINT NOT NULL,
		problem_title VARCHAR(255) NOT NULL,
		code          MEDIUMTEXT NOT NULL,
		feedback      MEDIUMTEXT NOT NULL,
		submitted_at  DATETIME(6) NOT NULL,
		INDEX idx_code_submissions_user (user_id, submitted_at),
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS concept_documents (
		id         BIGINT AUTO_INCREMENT PRIMARY KEY,
		collection VARCHAR(100) NOT NULL,
		doc_id     VARCHAR(255) NOT NULL,
		content    MEDIUMTEXT NOT NULL,
		embedding  MEDIUMTEXT NOT NULL,
		created_at DATETIME(6) NOT NULL,
		UNIQUE KEY uq_concept_documents (collection, doc_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		username      TEXT NOT NULL UNIQUE,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		date_joined   DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS user_profiles (
		id                 INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id            INTEGER NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
		bio                TEXT NOT NULL DEFAULT '',
		preferred_language TEXT NOT NULL DEFAULT '',
		skill_level        TEXT NOT NULL DEFAULT '',
		updated_at         DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS problems (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		title          TEXT NOT NULL UNIQUE,
		slug           TEXT NOT NULL,
		description    TEXT NOT NULL,
		difficulty     TEXT NOT NULL,
		related_topics TEXT NOT NULL DEFAULT '',
		created_at     DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_problems_slug ON problems(slug)`,
	`CREATE TABLE IF NOT EXISTS chat_messages (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id      INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		message_type TEXT NOT NULL CHECK (message_type IN ('user', 'bot')),
		content      TEXT NOT NULL,
		timestamp    DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_chat_messages_user ON chat_messages(user_id, timestamp)`,
	`CREATE TABLE IF NOT EXISTS uploaded_files (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id     INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		file        TEXT NOT NULL,
		file_name   TEXT NOT NULL,
		file_type   TEXT NOT NULL,
		uploaded_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS code_submissions (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id       INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		problem_title TEXT NOT NULL,
		code          TEXT NOT NULL,
		feedback      TEXT NOT NULL,
		submitted_at  DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_code_submissions_user ON code_submissions(user_id, submitted_at)`,
	`CREATE TABLE IF NOT EXISTS concept_documents (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		collection TEXT NOT NULL,
		doc_id     TEXT NOT NULL,
		content    TEXT NOT NULL,
		embedding  TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		UNIQUE (collection, doc_id)
	)`,
}
