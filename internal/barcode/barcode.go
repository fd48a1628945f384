// Package barcode allocates catalog barcodes and computes the EAN-13
// check digit label printers append.
package barcode

import (
	"strconv"

	"gorm.io/gorm"

	"go-jewelry-pos/internal/apperror"
	"go-jewelry-pos/internal/model"
)

// firstSequential keeps generated codes at seven digits and clear of
// the short demo codes used in documentation.
const firstSequential = 1000000

// NextCode reserves the next sequential barcode inside tx. The counter
// row is created on first use.
func NextCode(tx *gorm.DB) (string, error) {
	counter := model.BarcodeCounter{ID: 1, NextVal: firstSequential}
	if err := tx.Where(model.BarcodeCounter{ID: 1}).FirstOrCreate(&counter).Error; err != nil {
		return "", apperror.Persistence(err)
	}
	res := tx.Model(&model.BarcodeCounter{}).
		Where("id = ?", 1).
		Update("next_val", gorm.Expr("next_val + 1"))
	if res.Error != nil {
		return "", apperror.Persistence(res.Error)
	}
	return strconv.FormatInt(counter.NextVal, 10), nil
}

// CheckDigit computes the EAN-13 checksum for a numeric code: digits in
// even positions count once, odd positions three times.
func CheckDigit(code string) (int, error) {
	if code == "" {
		return 0, apperror.Validationf("barcode is empty")
	}
	total := 0
	for i, r := range code {
		if r < '0' || r > '9' {
			return 0, apperror.Validationf("barcode %q is not numeric", code)
		}
		d := int(r - '0')
		if i%2 == 0 {
			total += d
		} else {
			total += d * 3
		}
	}
	return (10 - total%10) % 10, nil
}
