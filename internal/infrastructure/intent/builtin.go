package intent

import "github.com/doeshing/nlsh-go/internal/domain"

// pathOrNamed returns a generator that emits "<base> <value>" using the first
// slot whose name matches, preferring earlier names in the preference list.
func pathOrNamed(base string, names ...string) domain.GeneratorFunc {
	return func(cmd domain.ParsedCommand) string {
		for _, name := range names {
			for _, slot := range cmd.Slots {
				if slot.Name == name && slot.Value != "" {
					return base + " " + slot.Value
				}
			}
		}
		return base
	}
}

func (r *Recognizer) registerFileIntents() {
	r.Register(domain.Intent{
		Name:        "create_file",
		Description: "Create a new file",
		Examples: []string{
			"create a file called test.txt",
			"make a new file named config.json",
			"touch readme.md",
			"create file example.py",
			"new file main.cpp",
		},
		RequiredSlots: []string{"filename"},
		Category:      domain.CategoryFileSystem,
		Generator:     pathOrNamed("touch", "path", "filename"),
	})

	r.Register(domain.Intent{
		Name:        "delete_file",
		Description: "Delete a file",
		Examples: []string{
			"delete the file test.txt",
			"remove config.json",
			"rm old_file.txt",
			"erase temp.log",
			"delete file output.dat",
		},
		RequiredSlots: []string{"filename"},
		Category:      domain.CategoryFileSystem,
		Generator:     pathOrNamed("rm", "path", "filename"),
	})

	r.Register(domain.Intent{
		Name:        "copy_file",
		Description: "Copy a file",
		Examples: []string{
			"copy file.txt to backup.txt",
			"duplicate main.py as main_backup.py",
			"cp config.json to config.json.bak",
			"make a copy of readme.md",
		},
		RequiredSlots: []string{"source", "destination"},
		Category:      domain.CategoryFileSystem,
	})

	r.Register(domain.Intent{
		Name:        "move_file",
		Description: "Move or rename a file",
		Examples: []string{
			"move file.txt to archive/",
			"rename old.py to new.py",
			"mv config.json to settings/",
			"move the file to another folder",
		},
		RequiredSlots: []string{"source", "destination"},
		Category:      domain.CategoryFileSystem,
	})

	r.Register(domain.Intent{
		Name:        "read_file",
		Description: "Display file contents",
		Examples: []string{
			"show me the file config.json",
			"read readme.md",
			"cat main.py",
			"display the contents of test.txt",
			"what's in the file log.txt",
		},
		RequiredSlots: []string{"filename"},
		Category:      domain.CategoryFileSystem,
		Generator:     pathOrNamed("cat", "path", "filename"),
	})

	r.Register(domain.Intent{
		Name:        "create_directory",
		Description: "Create a new directory",
		Examples: []string{
			"create a folder called src",
			"make directory test",
			"mkdir build",
			"create new folder lib",
			"make a new directory for the project",
		},
		RequiredSlots: []string{"dirname"},
		Category:      domain.CategoryFileSystem,
		Generator:     pathOrNamed("mkdir -p", "path", "dirname"),
	})
}

func (r *Recognizer) registerNavigationIntents() {
	r.Register(domain.Intent{
		Name:        "change_directory",
		Description: "Change current directory",
		Examples: []string{
			"go to the src folder",
			"cd to home",
			"change directory to /tmp",
			"navigate to the project folder",
			"switch to the parent directory",
			"go up one level",
			"go back",
		},
		OptionalSlots: []string{"path"},
		Category:      domain.CategoryNavigation,
	})

	r.Register(domain.Intent{
		Name:        "list_directory",
		Description: "List directory contents",
		Examples: []string{
			"list files in current folder",
			"show me all files",
			"what files are here",
			"ls",
			"list everything including hidden files",
			"show all files with details",
		},
		OptionalSlots: []string{"path"},
		Category:      domain.CategoryNavigation,
	})

	r.Register(domain.Intent{
		Name:        "print_directory",
		Description: "Show current directory",
		Examples: []string{
			"where am I",
			"what directory am I in",
			"show current path",
			"pwd",
			"current folder",
		},
		Category: domain.CategoryNavigation,
	})
}

func (r *Recognizer) registerSearchIntents() {
	r.Register(domain.Intent{
		Name:        "find_files",
		Description: "Find files by name or pattern",
		Examples: []string{
			"find all python files",
			"search for files named config",
			"find files with extension .txt",
			"look for test files",
			"find all files containing main",
		},
		OptionalSlots: []string{"pattern", "path"},
		Category:      domain.CategorySearch,
	})

	r.Register(domain.Intent{
		Name:        "search_content",
		Description: "Search for text in files",
		Examples: []string{
			"search for TODO in all files",
			"find lines containing error",
			"grep for function in py files",
			"look for the word config in the code",
			"search for import statements",
		},
		RequiredSlots: []string{"pattern"},
		OptionalSlots: []string{"path", "file_pattern"},
		Category:      domain.CategorySearch,
	})
}

func (r *Recognizer) registerGitIntents() {
	r.Register(domain.Intent{
		Name:        "git_status",
		Description: "Show git status",
		Examples: []string{
			"show git status",
			"what files have changed",
			"git status",
			"check repo status",
			"what's modified",
		},
		Category: domain.CategoryGit,
	})

	r.Register(domain.Intent{
		Name:        "git_commit",
		Description: "Commit changes",
		Examples: []string{
			"commit changes with message fix bug",
			"git commit -m update readme",
			"save my changes as initial commit",
			"commit all changes",
		},
		OptionalSlots: []string{"message"},
		Category:      domain.CategoryGit,
	})

	r.Register(domain.Intent{
		Name:        "git_push",
		Description: "Push changes to remote",
		Examples: []string{
			"push to origin",
			"git push",
			"push my commits",
			"upload changes to github",
		},
		OptionalSlots: []string{"remote", "branch"},
		Category:      domain.CategoryGit,
	})

	r.Register(domain.Intent{
		Name:        "git_pull",
		Description: "Pull changes from remote",
		Examples: []string{
			"pull latest changes",
			"git pull",
			"update from remote",
			"fetch and merge",
		},
		OptionalSlots: []string{"remote", "branch"},
		Category:      domain.CategoryGit,
	})

	r.Register(domain.Intent{
		Name:        "git_add",
		Description: "Stage files for commit",
		Examples: []string{
			"add all files to git",
			"stage the changes",
			"git add everything",
			"add file.txt to staging",
		},
		OptionalSlots: []string{"path"},
		Category:      domain.CategoryGit,
	})

	r.Register(domain.Intent{
		Name:        "git_branch",
		Description: "List or create branches",
		Examples: []string{
			"show all branches",
			"list branches",
			"create a new branch called feature",
			"git branch",
		},
		OptionalSlots: []string{"branch_name"},
		Category:      domain.CategoryGit,
	})

	r.Register(domain.Intent{
		Name:        "git_checkout",
		Description: "Switch branches or restore files",
		Examples: []string{
			"switch to main branch",
			"checkout develop",
			"go to the feature branch",
			"git checkout master",
		},
		OptionalSlots: []string{"branch_name", "path"},
		Category:      domain.CategoryGit,
	})
}

func (r *Recognizer) registerSystemIntents() {
	r.Register(domain.Intent{
		Name:        "show_datetime",
		Description: "Show current date and time",
		Examples: []string{
			"what time is it",
			"show the date",
			"current time",
			"what's today's date",
		},
		Category: domain.CategorySystem,
	})

	r.Register(domain.Intent{
		Name:        "show_environment",
		Description: "Show environment variables",
		Examples: []string{
			"show environment variables",
			"print PATH",
			"what's the value of HOME",
			"env",
		},
		OptionalSlots: []string{"variable"},
		Category:      domain.CategorySystem,
	})

	r.Register(domain.Intent{
		Name:        "list_processes",
		Description: "List running processes",
		Examples: []string{
			"show running processes",
			"list all processes",
			"what's running",
			"ps aux",
		},
		Category: domain.CategoryProcess,
	})

	r.Register(domain.Intent{
		Name:        "kill_process",
		Description: "Terminate a process",
		Examples: []string{
			"kill process 1234",
			"stop the server",
			"terminate node",
			"kill all python processes",
		},
		RequiredSlots: []string{"process"},
		Category:      domain.CategoryProcess,
	})
}
