package vanilla

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassShell   ChromeClass = "adminshell"
	ClassSidebar ChromeClass = "adminshell-sidebar"
	ClassMain    ChromeClass = "adminshell-main"
	ClassForm    ChromeClass = "adminshell-form"
	ClassField   ChromeClass = "adminshell-field"
	ClassErrors  ChromeClass = "adminshell-errors"
	ClassActions ChromeClass = "adminshell-actions"
	ClassNotice  ChromeClass = "adminshell-notice"
)

// Utility classes applied to form controls, matching the admin stylesheet.
const (
	inputClass        = "mt-1 block w-full border border-gray-300 rounded-md shadow-sm p-2 focus:outline-none focus:ring-indigo-500 focus:border-indigo-500"
	inputInvalidClass = "mt-1 block w-full border border-red-500 rounded-md shadow-sm p-2 focus:outline-none focus:ring-red-500"
	errorTextClass    = "text-red-500 text-sm mt-1"
	submitClass       = "w-full bg-red-800 text-white py-2 px-4 rounded-md hover:bg-red-900 focus:outline-none focus:ring-2 focus:ring-red-500"
)
