package utils

import (
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	secret := viper.GetString("PASSWORD_PEPPER")
	bytes, err := bcrypt.GenerateFromPassword([]byte(password+secret), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	secret := viper.GetString("PASSWORD_PEPPER")
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password+secret))
	return err == nil
}
