package repository

import (
	"errors"
	"fmt"
	"strings"

	"rpg-server/internal/models"

	"github.com/go-playground/validator/v10"
)

const nameRules = "required,max=64,excludesall=/\\"

var validate = validator.New()

// ValidateName проверяет имя персонажа: оно же ключ сохранения и часть имени файла.
func ValidateName(name string) error {
	if strings.TrimSpace(name) != name {
		return fmt.Errorf("%w: leading or trailing spaces", models.ErrInvalidName)
	}
	if err := validate.Var(name, nameRules); err != nil {
		return fmt.Errorf("%w: %q", models.ErrInvalidName, name)
	}
	return nil
}

// ValidateRecord проверяет запись перед записью и после чтения.
func ValidateRecord(record *models.SaveRecord) error {
	if record == nil {
		return fmt.Errorf("%w: nil record", models.ErrInvalidSave)
	}
	err := validate.Struct(record)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			if fe.StructField() == "Name" {
				return fmt.Errorf("%w: %q", models.ErrInvalidName, record.Name)
			}
			fields = append(fields, fmt.Sprintf("%s(%s)", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("%w: %s", models.ErrInvalidSave, strings.Join(fields, ", "))
	}
	return fmt.Errorf("%w: %v", models.ErrInvalidSave, err)
}
