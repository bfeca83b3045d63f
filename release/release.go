package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Выставляет тег следующей патч-версии по последнему тегу репозитория
func main() {
	var push bool
	flag.BoolVar(&push, "push", false, "Отправить теги в origin")
	flag.Parse()

	if err := run(push); err != nil {
		fmt.Println("Произошла ошибка:", err)
		os.Exit(1)
	}
}

func run(push bool) error {
	out, err := exec.Command("git", "describe", "--abbrev=0").Output()
	if err != nil {
		return errors.Wrap(err, "git describe")
	}

	newversion, err := nextVersion(string(out))
	if err != nil {
		return err
	}

	if out, err := exec.Command("git", "tag", "-a", newversion, "-m", newversion).CombinedOutput(); err != nil {
		return errors.Wrapf(err, "git tag: %s", out)
	}
	fmt.Println("версия", newversion)

	if push {
		if out, err := exec.Command("git", "push", "--tags").CombinedOutput(); err != nil {
			return errors.Wrapf(err, "git push: %s", out)
		}
	}

	return nil
}

func nextVersion(last string) (string, error) {
	last = strings.Trim(last, "\r\n ")
	splitted := strings.Split(last, ".")
	if len(splitted) < 3 {
		return "", fmt.Errorf("последняя версия %q не коррректного формата", last)
	}

	v, err := strconv.Atoi(splitted[len(splitted)-1])
	if err != nil {
		return "", errors.Wrapf(err, "версия %q", last)
	}

	return strings.Join(splitted[:len(splitted)-1], ".") + "." + strconv.Itoa(v+1), nil
}
