package providers

import (
	"fmt"

	"github.com/gookit/validate"

	"nest/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

// Validate checks the static struct rules and then the cross-field ones
// that the tags cannot express.
func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return fmt.Errorf("invalid config: %s", v.Errors.One())
	}

	if cv.conf.Mongo.Enabled && (cv.conf.Mongo.URI == "" || cv.conf.Mongo.Database == "") {
		return fmt.Errorf("invalid config: mongo.uri and mongo.database are required when mongo is enabled")
	}
	if cv.conf.Redis.Enabled && cv.conf.Redis.Addr == "" {
		return fmt.Errorf("invalid config: redis.addr is required when redis is enabled")
	}
	if cv.conf.Database.MinConns > cv.conf.Database.MaxConns && cv.conf.Database.MaxConns > 0 {
		return fmt.Errorf("invalid config: database.minConns exceeds database.maxConns")
	}
	if cv.conf.Training.BufferSize < 0 {
		return fmt.Errorf("invalid config: training.bufferSize must not be negative")
	}
	return nil
}
