package migration

import (
	"context"

	"github.com/questdrop/backend/internal/entity"
	"github.com/questdrop/backend/pkg/xcontext"
)

// Migrations run in order exactly once. Append only, never reorder.
var migrations = []struct {
	version string
	run     func(context.Context) error
}{
	{"0000_init", migrate0000},
}

func Migrate(ctx context.Context) error {
	if err := xcontext.DB(ctx).AutoMigrate(&entity.Migration{}); err != nil {
		return err
	}

	var records []entity.Migration
	if err := xcontext.DB(ctx).Find(&records).Error; err != nil {
		return err
	}

	applied := map[string]bool{}
	for _, record := range records {
		applied[record.Version] = true
	}

	for _, migration := range migrations {
		if applied[migration.version] {
			continue
		}

		xcontext.Logger(ctx).Infof("Applying migration %s", migration.version)
		if err := migration.run(ctx); err != nil {
			return err
		}

		err := xcontext.DB(ctx).Create(&entity.Migration{Version: migration.version}).Error
		if err != nil {
			return err
		}
	}

	return nil
}
