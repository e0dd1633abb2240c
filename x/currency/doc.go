/*
Package currency is the asset registry. A ticker must be registered before
any hashed timelock box can refer to it.
*/
package currency
