/*
Package utils contains decorators shared by every message path: panic
recovery, transaction logging and prometheus instrumentation.
*/
package utils
