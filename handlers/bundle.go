package handlers

import (
	userRepoPkg "voyago/database/repository/user"
)

// HandlerBundle groups every endpoint handler plus the repositories the
// route middleware needs.
type HandlerBundle struct {
	UserRepo userRepoPkg.UserRepository

	Wizard       *WizardHandler
	Auth         *AuthHandler
	Users        *UserHandler
	Drivers      *DriverHandler
	Destinations *DestinationHandler
	Bookings     *BookingHandler
	Maps         *MapsHandler
	Storage      *StorageHandler
	Admin        *AdminHandler
}
