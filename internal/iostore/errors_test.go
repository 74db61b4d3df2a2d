package iostore

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/ipnidb/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestInsertError(t *testing.T) {
	tests := []struct {
		msg  string
		err  error
		code gn.ErrorCode
	}{
		{"duplicated key", gorm.ErrDuplicatedKey, errcode.StoreConflictError},
		{"wrapped duplicated key",
			fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), errcode.StoreConflictError},
		{"other", errors.New("disk full"), errcode.StoreQueryError},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			err := insertError("ipni_name", "1-1", v.err)
			var gnErr *gn.Error
			require.True(t, errors.As(err, &gnErr))
			assert.Equal(t, v.code, gnErr.Code)
		})
	}
}
