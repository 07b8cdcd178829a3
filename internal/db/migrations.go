package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'house_status') THEN
			CREATE TYPE house_status AS ENUM (
				'PROJECT', 'PLANNED', 'IN_PROGRESS', 'SUSPENDED',
				'BUILT', 'FOR_SALE', 'SOLD', 'ARCHIVED'
			);
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'order_status') THEN
			CREATE TYPE order_status AS ENUM (
				'PENDING', 'APPROVED', 'IN_PROGRESS', 'AWAITING_PAYMENT', 'PAID',
				'AWAITING_SIGN_OFF', 'SIGNED', 'COMPLETED', 'CANCELLED', 'SOLD'
			);
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'user_role') THEN
			CREATE TYPE user_role AS ENUM ('ADMIN', 'USER');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		org_name VARCHAR(255),
		role user_role NOT NULL DEFAULT 'USER',
		email VARCHAR(255) NOT NULL,
		password VARCHAR(255) NOT NULL
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_users_email ON users (email);`,
	`CREATE TABLE IF NOT EXISTS houses (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT,
		main_image VARCHAR(255) NOT NULL DEFAULT 'placeholder.png',
		status house_status NOT NULL DEFAULT 'PROJECT',
		is_order BOOLEAN NOT NULL DEFAULT FALSE,
		district VARCHAR(255),
		address VARCHAR(255),
		floors INT,
		entrances INT,
		begin_date DATE,
		end_date DATE,
		start_price NUMERIC(12,2),
		final_price NUMERIC(12,2)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_houses_status ON houses (status);`,
	`CREATE INDEX IF NOT EXISTS idx_houses_district ON houses (district);`,
	`CREATE TABLE IF NOT EXISTS house_images (
		id BIGSERIAL PRIMARY KEY,
		id_house BIGINT NOT NULL REFERENCES houses(id),
		image VARCHAR(255) NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_house_images_house ON house_images (id_house);`,
	`CREATE TABLE IF NOT EXISTS attributes (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS house_attributes (
		id_house BIGINT NOT NULL REFERENCES houses(id),
		id_attribute BIGINT NOT NULL REFERENCES attributes(id),
		value VARCHAR(255) NOT NULL,
		PRIMARY KEY (id_house, id_attribute)
	);`,
	`CREATE TABLE IF NOT EXISTS apartment_categories (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS apartments (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT,
		id_category BIGINT NOT NULL REFERENCES apartment_categories(id),
		id_house BIGINT NOT NULL REFERENCES houses(id),
		rooms INT,
		area NUMERIC(10,2),
		count INT
	);`,
	`CREATE INDEX IF NOT EXISTS idx_apartments_house ON apartments (id_house);`,
	`CREATE TABLE IF NOT EXISTS apartment_images (
		id BIGSERIAL PRIMARY KEY,
		id_apartment BIGINT NOT NULL REFERENCES apartments(id),
		image VARCHAR(255) NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_apartment_images_apartment ON apartment_images (id_apartment);`,
	`CREATE TABLE IF NOT EXISTS parameters (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS apartment_parameters (
		id_apartment BIGINT NOT NULL REFERENCES apartments(id),
		id_parameter BIGINT NOT NULL REFERENCES parameters(id),
		value VARCHAR(255) NOT NULL,
		PRIMARY KEY (id_apartment, id_parameter)
	);`,
	`CREATE TABLE IF NOT EXISTS orders (
		id BIGSERIAL PRIMARY KEY,
		id_user BIGINT NOT NULL REFERENCES users(id),
		id_house BIGINT NOT NULL REFERENCES houses(id),
		status order_status NOT NULL DEFAULT 'PENDING',
		contract_price NUMERIC(12,2) NOT NULL,
		create_date DATE NOT NULL,
		update_date DATE,
		payment_date DATE,
		sign_off_date DATE,
		completion_date DATE
	);`,
	`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders (id_user);`,
	`CREATE INDEX IF NOT EXISTS idx_orders_house ON orders (id_house);`,
	`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders (status);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
