package constant

import (
	"time"
)

// Context key types to avoid collisions
type contextKey string

const (
	ContextKeyUserID   contextKey = "user_id"
	ContextKeyUserRole contextKey = "user_role"
)

const (
	RoleCustomer = "customer"
	RoleProvider = "provider"
	RoleAdmin    = "admin"
)

const (
	ActorSystem = "system"
)

const (
	DateFormat      = "2006-01-02"
	TimeSlotFormat  = "03:04 PM"
	TimestampFormat = time.RFC3339
)

const (
	StoreKeyBookings        = "bookings"
	StoreKeyNotifications   = "notifications"
	StoreKeyChats           = "chats"
	StoreKeyReviews         = "reviews"
	StoreKeyUsers           = "users"
	StoreKeyCatalogServices = "catalog_services"
	StoreKeyProviderJobs    = "provider_jobs"
)

const (
	StoreDriverMemory = "memory"
	StoreDriverRedis  = "redis"
)

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelStoreScopeName      = "store"
	OtelEventScopeName      = "event"
	OtelSimulatorScopeName  = "simulator"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

const (
	Empty = ""
)
