// Copyright (c) 2026, the Panda Stack contributors
//
// SPDX-License-Identifier: Apache-2.0

package create

import (
	"strings"
)

// DefaultPackageManager is used for hints when the user agent does not identify one
const DefaultPackageManager = "npm"

// PackageManager is the package manager that invoked the tool
type PackageManager struct {
	Name    string
	Version string
}

// Hint is a command the user should run after scaffolding
type Hint struct {
	Command     string
	Description string
}

// PackageManagerFromUserAgent parses user agents like "pnpm/9.1.0 npm/? node/v20.12.2 linux x64"
func PackageManagerFromUserAgent(userAgent string) (PackageManager, bool) {
	fields := strings.Fields(userAgent)
	if len(fields) == 0 {
		return PackageManager{}, false
	}

	name, version, _ := strings.Cut(fields[0], "/")
	if name == "" {
		return PackageManager{}, false
	}

	return PackageManager{Name: name, Version: version}, true
}

// NextSteps are the commands to install, migrate, develop, build and start a new project using manager
func NextSteps(manager string) []Hint {
	if manager == "" {
		manager = DefaultPackageManager
	}

	switch manager {
	case "yarn":
		return []Hint{
			{"yarn", "Install the dependencies 📔"},
			{"yarn prisma", "Run Prisma migrations to set up your database schema 🏗️"},
			{"yarn dev", "Start the development server 🛠️"},
			{"yarn build", "Bundle the app for production 📦"},
			{"yarn start", "Launch your application in production mode 🚀"},
		}

	default:
		return []Hint{
			{manager + " install", "Install the dependencies 📔"},
			{manager + " run dev", "Start the development server 🛠️"},
			{manager + " prisma", "Run Prisma migrations to set up your database schema 🏗️"},
			{manager + " run build", "Bundle the app for production 📦"},
			{manager + " start", "Launch your application in production mode 🚀"},
		}
	}
}
