package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Project indexes for owner/assignee listing and lifecycle filtering
		{"projects", "idx_projects_user_id", "user_id"},
		{"projects", "idx_projects_provider_id", "provider_id"},
		{"projects", "idx_projects_status", "status"},
		{"projects", "idx_projects_created_at", "created_at"},

		// Message indexes for chronological per-project listing
		{"messages", "idx_messages_project_id", "project_id"},
		{"messages", "idx_messages_created_at", "created_at"},

		// Review indexes for per-project and per-receiver listing
		{"reviews", "idx_reviews_project_id", "project_id"},
		{"reviews", "idx_reviews_receiver_id", "receiver_id"},

		// Subscription index for the latest-row-per-user lookup
		{"subscriptions", "idx_subscriptions_user_id", "user_id"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM information_schema.statistics
			WHERE table_name = ? AND index_name = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
