package entity

import "github.com/shopspring/decimal"

// Product maps a row of the products table. Price is a fixed-point
// DECIMAL(10,2); float64 would lose cents on arithmetic.
type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

/*
MySQL schema:
CREATE TABLE products (
	id INT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	description TEXT NOT NULL,
	price DECIMAL(10, 2) NOT NULL,
	quantity INT NOT NULL
);
*/
