package session

import (
	"errors"
	"strings"

	"rpg-server/internal/models"
	"rpg-server/internal/repository"

	"go.uber.org/zap"
)

func (s *Session) characterSelect() error {
	for {
		s.println("")
		s.println("1. New game")
		s.println("2. Load game")
		choice, err := s.readLine("Choose (1-2): ")
		if err != nil {
			return err
		}

		switch strings.ToLower(choice) {
		case "1", "new", "new game":
			return s.newCharacter()
		case "2", "load", "load game":
			loaded, err := s.loadCharacter()
			if err != nil || loaded {
				return err
			}
		default:
			s.println("Invalid choice. Enter 1 or 2.")
		}
	}
}

func (s *Session) readName() (string, error) {
	for {
		name, err := s.readLine("Enter character name: ")
		if err != nil {
			return "", err
		}
		if err := repository.ValidateName(name); err != nil {
			s.println("Invalid name. Use 1-64 characters without slashes.")
			continue
		}
		return name, nil
	}
}

func (s *Session) newCharacter() error {
	name, err := s.readName()
	if err != nil {
		return err
	}

	for {
		s.println("Game modes: [1] normal  [2] easy  [3] hardcore (no resting)")
		answer, err := s.readLine("Choose mode (normal/easy/hardcore): ")
		if err != nil {
			return err
		}
		mode, ok := parseModeChoice(answer)
		if !ok {
			s.println("Invalid mode.")
			continue
		}

		s.player = models.NewPlayer(name, mode)
		s.printf("\nHello, %s! Your %s adventure begins now.\n", name, mode)
		return nil
	}
}

func parseModeChoice(answer string) (models.GameMode, bool) {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "", "1":
		return models.ModeNormal, true
	case "2":
		return models.ModeEasy, true
	case "3":
		return models.ModeHardcore, true
	}
	mode, err := models.ParseGameMode(answer)
	if err != nil {
		return "", false
	}
	return mode, true
}

// loadCharacter возвращает false, если загрузить не удалось и нужно вернуться к выбору.
func (s *Session) loadCharacter() (bool, error) {
	if names, err := s.deps.Saves.List(s.ctx); err != nil {
		s.logger.Warn("Failed to list saves", zap.Error(err))
	} else if len(names) > 0 {
		s.printf("Saved characters: %s\n", strings.Join(names, ", "))
	}

	name, err := s.readName()
	if err != nil {
		return false, err
	}

	record, err := s.deps.Saves.Load(s.ctx, name)
	switch {
	case err == nil:
	case errors.Is(err, models.ErrNotFound):
		s.printf("No save found for %s.\n", name)
		return false, nil
	case errors.Is(err, models.ErrInvalidSave):
		s.printf("The save for %s is corrupted and cannot be loaded.\n", name)
		return false, nil
	default:
		s.logger.Error("Failed to load save", zap.String("name", name), zap.Error(err))
		s.println("Could not load the save right now. Try again later.")
		return false, nil
	}

	s.player = record.ToPlayer()
	s.printf("\nWelcome back, %s! (level %d, %s mode)\n", s.player.Name, s.player.Level, s.player.Mode)
	return true, nil
}
