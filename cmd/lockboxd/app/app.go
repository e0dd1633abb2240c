/*
Package app links together all the various components
to construct the lockboxd application.
*/
package app

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/app"
	"github.com/iov-one/lockbox/x"
	"github.com/iov-one/lockbox/x/cash"
	"github.com/iov-one/lockbox/x/currency"
	"github.com/iov-one/lockbox/x/feemgr"
	"github.com/iov-one/lockbox/x/htlc"
	"github.com/iov-one/lockbox/x/ledger"
	"github.com/iov-one/lockbox/x/sigs"
	"github.com/iov-one/lockbox/x/simplebox"
	"github.com/iov-one/lockbox/x/utils"
)

// Authenticator returns the authentication used by all handlers. Signers are
// set by the submitting environment.
func Authenticator() x.Authenticator {
	return sigs.Authenticate{}
}

// Chain returns a chain of decorators, to handle logging, recovery,
// instrumentation, authentication and module pausing. A nil metrics
// decorator is skipped.
func Chain(paused x.PauseView, metrics *utils.Metrics) app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		metrics,
		sigs.NewDecorator(),
		x.NewPauseDecorator(paused),
	)
}

// Router returns a router dispatching every message of the settlement
// engines and of the supporting modules.
func Router(authFn x.Authenticator, issuer lockbox.Address) *app.Router {
	r := app.NewRouter()
	vault := cash.NewVault(cash.NewController())
	liquidity := ledger.NewLedger(vault)
	fees := feemgr.NewRegistry(liquidity)

	cash.RegisterRoutes(r, authFn, cash.NewController())
	currency.RegisterRoutes(r, authFn, issuer)
	ledger.RegisterRoutes(r, authFn, liquidity, vault)
	feemgr.RegisterRoutes(r, authFn, fees)
	simplebox.RegisterRoutes(r, authFn, vault, liquidity, fees)
	htlc.RegisterRoutes(r, authFn, vault, currency.NewTokenInfoBucket(), liquidity)
	return r
}

// QueryRouter returns a query router exposing the state of every module.
func QueryRouter() lockbox.QueryRouter {
	vault := cash.NewVault(cash.NewController())
	liquidity := ledger.NewLedger(vault)

	r := lockbox.NewQueryRouter()
	cash.RegisterQuery(r, cash.NewController())
	currency.RegisterQuery(r)
	ledger.RegisterQuery(r, liquidity)
	feemgr.RegisterQuery(r, feemgr.NewRegistry(liquidity))
	simplebox.RegisterQuery(r)
	htlc.RegisterQuery(r)
	return r
}

// Initializers returns the genesis loaders of all modules. Every settlement
// module requires its configuration to be present in the genesis file.
func Initializers() lockbox.Initializer {
	return app.ChainInitializers(
		cash.Initializer{},
		&currency.Initializer{},
		feemgr.Initializer{},
		simplebox.Initializer{},
		htlc.Initializer{},
	)
}

// Stack wires up a standard router with a standard decorator chain. The
// returned router is used to decode incoming messages.
func Stack(issuer lockbox.Address, paused x.PauseView, metrics *utils.Metrics) (lockbox.Handler, *app.Router) {
	authFn := Authenticator()
	r := Router(authFn, issuer)
	return Chain(paused, metrics).WithHandler(r), r
}
