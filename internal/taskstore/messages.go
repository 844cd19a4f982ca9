package taskstore

import (
	"fmt"

	"taskpad/internal/notify"
	"taskpad/internal/service"
)

func createdMessage(t service.Task) notify.Message {
	return notify.Message{
		Title: "New Task Added!",
		Body:  fmt.Sprintf("Your task \"%s\" has been created.", t.Description),
		Key:   t.ID,
	}
}

func reminderMessage(t service.Task) notify.Message {
	return notify.Message{
		Title: "Reminder!",
		Body:  fmt.Sprintf("Your task \"%s\" is due!", t.Description),
		Key:   t.ID,
	}
}
