package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyDownloaderTab     = "downloader_tab"
	KeyTrimmerTab        = "trimmer_tab"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeyQuit              = "quit"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyBrowse            = "browse"
	KeySettingsSaved     = "settings_saved"
	KeyDownloadDirectory = "download_directory"
	KeyTrimmedDirectory  = "trimmed_directory"
	KeyFFmpegPath        = "ffmpeg_path"
	KeyFFprobePath       = "ffprobe_path"

	// Downloader tab
	KeyURL               = "url"
	KeyEnterURL          = "enter_url"
	KeyResolution        = "resolution"
	KeyAutoLoad          = "auto_load"
	KeyDownload          = "download"
	KeyPickFromPlaylist  = "pick_from_playlist"
	KeyLoadingPlaylist   = "loading_playlist"
	KeyStartingDownload  = "starting_download"
	KeyDownloadComplete  = "download_complete"
	KeySavedAs           = "saved_as"
	KeyDownloadFailed    = "download_failed"
	KeyDownloadBusy      = "download_busy"
	KeyMissingURL        = "missing_url"
	KeyPleaseEnterURL    = "please_enter_url"
	KeyInvalidURL        = "invalid_url"
	KeyErrorOpeningFile  = "error_opening_file"
	KeyOpenDownloads     = "open_downloads"
	KeyDownloadingFormat = "downloading_format"

	// Trimmer tab
	KeySelectVideo       = "select_video"
	KeyRecentDownloads   = "recent_downloads"
	KeyNoVideoSelected   = "no_video_selected"
	KeyStartTime         = "start_time"
	KeyEndTime           = "end_time"
	KeyAddTask           = "add_task"
	KeyPreviewRange      = "preview_range"
	KeyRemove            = "remove"
	KeyMoveUp            = "move_up"
	KeyMoveDown          = "move_down"
	KeyStartQueue        = "start_queue"
	KeyLoadQueue         = "load_queue"
	KeySaveQueue         = "save_queue"
	KeyNoVideoTitle      = "no_video_title"
	KeyNoVideoForTask    = "no_video_for_task"
	KeyNoVideoForPreview = "no_video_for_preview"
	KeyNoTasksTitle      = "no_tasks_title"
	KeyNoTasks           = "no_tasks"
	KeyInvalidTime       = "invalid_time"
	KeyQueueComplete     = "queue_complete"
	KeyQueueBusy         = "queue_busy"
	KeyQueueLoaded       = "queue_loaded"
	KeyQueueSaved        = "queue_saved"
	KeyOpenTrimmed       = "open_trimmed"

	// Preview
	KeyVideoPreview = "video_preview"
	KeyPlay         = "play"
	KeyPause        = "pause"
	KeyMute         = "mute"
	KeyUnmute       = "unmute"
	KeyPreviewError = "preview_error"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "Clip Farming Tool",
		KeyDownloaderTab:     "YouTube Downloader",
		KeyTrimmerTab:        "Video Trimmer",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeyQuit:              "Quit",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeyBrowse:            "Browse",
		KeySettingsSaved:     "Settings saved successfully!",
		KeyDownloadDirectory: "Download Directory",
		KeyTrimmedDirectory:  "Trimmed Clips Directory",
		KeyFFmpegPath:        "ffmpeg Executable",
		KeyFFprobePath:       "ffprobe Executable",

		KeyURL:               "YouTube URL:",
		KeyEnterURL:          "https://youtube.com/watch?v=...",
		KeyResolution:        "Resolution:",
		KeyAutoLoad:          "Auto-load into Trimmer",
		KeyDownload:          "Download",
		KeyPickFromPlaylist:  "Pick a video from the playlist",
		KeyLoadingPlaylist:   "Loading playlist...",
		KeyStartingDownload:  "Starting download...",
		KeyDownloadComplete:  "Download complete.",
		KeySavedAs:           "Saved as",
		KeyDownloadFailed:    "Download failed",
		KeyDownloadBusy:      "A download is already running",
		KeyMissingURL:        "Missing URL",
		KeyPleaseEnterURL:    "Please enter a YouTube URL.",
		KeyInvalidURL:        "Invalid URL",
		KeyErrorOpeningFile:  "Error opening file",
		KeyOpenDownloads:     "Open Downloads Folder",
		KeyDownloadingFormat: "Downloading",

		KeySelectVideo:       "Select Video for Task",
		KeyRecentDownloads:   "Recent downloads",
		KeyNoVideoSelected:   "No video selected",
		KeyStartTime:         "Start Time:",
		KeyEndTime:           "End Time:",
		KeyAddTask:           "Add Trim Task",
		KeyPreviewRange:      "Preview Range",
		KeyRemove:            "Remove",
		KeyMoveUp:            "Move Up",
		KeyMoveDown:          "Move Down",
		KeyStartQueue:        "Start Queue",
		KeyLoadQueue:         "Load Queue",
		KeySaveQueue:         "Save Queue",
		KeyNoVideoTitle:      "No Video Selected",
		KeyNoVideoForTask:    "Please select a video file for this task.",
		KeyNoVideoForPreview: "Please select a video file for preview.",
		KeyNoTasksTitle:      "No Tasks",
		KeyNoTasks:           "No trim tasks in the queue.",
		KeyInvalidTime:       "Invalid time",
		KeyQueueComplete:     "Queue processing complete.",
		KeyQueueBusy:         "The queue is already being processed",
		KeyQueueLoaded:       "Queue loaded",
		KeyQueueSaved:        "Queue saved",
		KeyOpenTrimmed:       "Open Trimmed Folder",

		KeyVideoPreview: "Video Preview:",
		KeyPlay:         "Play",
		KeyPause:        "Pause",
		KeyMute:         "Mute",
		KeyUnmute:       "Unmute",
		KeyPreviewError: "Preview error",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "Нарезка клипов",
		KeyDownloaderTab:     "Загрузка с YouTube",
		KeyTrimmerTab:        "Нарезка видео",
		KeySettings:          "Настройки",
		KeyFile:              "Файл",
		KeyLanguage:          "Язык",
		KeyQuit:              "Выход",
		KeySave:              "Сохранить",
		KeyCancel:            "Отмена",
		KeyBrowse:            "Обзор",
		KeySettingsSaved:     "Настройки успешно сохранены!",
		KeyDownloadDirectory: "Папка загрузки",
		KeyTrimmedDirectory:  "Папка для клипов",
		KeyFFmpegPath:        "Путь к ffmpeg",
		KeyFFprobePath:       "Путь к ffprobe",

		KeyURL:               "URL YouTube:",
		KeyEnterURL:          "https://youtube.com/watch?v=...",
		KeyResolution:        "Разрешение:",
		KeyAutoLoad:          "Открыть в нарезке после загрузки",
		KeyDownload:          "Скачать",
		KeyPickFromPlaylist:  "Выберите видео из плейлиста",
		KeyLoadingPlaylist:   "Загрузка плейлиста...",
		KeyStartingDownload:  "Загрузка начата...",
		KeyDownloadComplete:  "Загрузка завершена.",
		KeySavedAs:           "Сохранено как",
		KeyDownloadFailed:    "Ошибка загрузки",
		KeyDownloadBusy:      "Загрузка уже выполняется",
		KeyMissingURL:        "Нет URL",
		KeyPleaseEnterURL:    "Пожалуйста, введите URL YouTube.",
		KeyInvalidURL:        "Неверный URL",
		KeyErrorOpeningFile:  "Ошибка открытия файла",
		KeyOpenDownloads:     "Открыть папку загрузок",
		KeyDownloadingFormat: "Загрузка",

		KeySelectVideo:       "Выбрать видео",
		KeyRecentDownloads:   "Недавние загрузки",
		KeyNoVideoSelected:   "Видео не выбрано",
		KeyStartTime:         "Начало:",
		KeyEndTime:           "Конец:",
		KeyAddTask:           "Добавить задачу",
		KeyPreviewRange:      "Просмотр фрагмента",
		KeyRemove:            "Удалить",
		KeyMoveUp:            "Вверх",
		KeyMoveDown:          "Вниз",
		KeyStartQueue:        "Запустить очередь",
		KeyLoadQueue:         "Загрузить очередь",
		KeySaveQueue:         "Сохранить очередь",
		KeyNoVideoTitle:      "Видео не выбрано",
		KeyNoVideoForTask:    "Выберите видеофайл для задачи.",
		KeyNoVideoForPreview: "Выберите видеофайл для просмотра.",
		KeyNoTasksTitle:      "Нет задач",
		KeyNoTasks:           "Очередь нарезки пуста.",
		KeyInvalidTime:       "Неверное время",
		KeyQueueComplete:     "Обработка очереди завершена.",
		KeyQueueBusy:         "Очередь уже обрабатывается",
		KeyQueueLoaded:       "Очередь загружена",
		KeyQueueSaved:        "Очередь сохранена",
		KeyOpenTrimmed:       "Открыть папку клипов",

		KeyVideoPreview: "Просмотр видео:",
		KeyPlay:         "Играть",
		KeyPause:        "Пауза",
		KeyMute:         "Без звука",
		KeyUnmute:       "Со звуком",
		KeyPreviewError: "Ошибка просмотра",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "Clip Farming Tool",
		KeyDownloaderTab:     "Baixar do YouTube",
		KeyTrimmerTab:        "Cortar Vídeo",
		KeySettings:          "Configurações",
		KeyFile:              "Arquivo",
		KeyLanguage:          "Idioma",
		KeyQuit:              "Sair",
		KeySave:              "Salvar",
		KeyCancel:            "Cancelar",
		KeyBrowse:            "Navegar",
		KeySettingsSaved:     "Configurações salvas com sucesso!",
		KeyDownloadDirectory: "Diretório de Download",
		KeyTrimmedDirectory:  "Diretório de Cortes",
		KeyFFmpegPath:        "Executável do ffmpeg",
		KeyFFprobePath:       "Executável do ffprobe",

		KeyURL:               "URL do YouTube:",
		KeyEnterURL:          "https://youtube.com/watch?v=...",
		KeyResolution:        "Resolução:",
		KeyAutoLoad:          "Abrir no cortador ao concluir",
		KeyDownload:          "Baixar",
		KeyPickFromPlaylist:  "Escolha um vídeo da playlist",
		KeyLoadingPlaylist:   "Carregando playlist...",
		KeyStartingDownload:  "Iniciando download...",
		KeyDownloadComplete:  "Download concluído.",
		KeySavedAs:           "Salvo como",
		KeyDownloadFailed:    "Falha no download",
		KeyDownloadBusy:      "Um download já está em andamento",
		KeyMissingURL:        "URL ausente",
		KeyPleaseEnterURL:    "Por favor, digite uma URL do YouTube.",
		KeyInvalidURL:        "URL inválida",
		KeyErrorOpeningFile:  "Erro ao abrir arquivo",
		KeyOpenDownloads:     "Abrir pasta de downloads",
		KeyDownloadingFormat: "Baixando",

		KeySelectVideo:       "Selecionar vídeo",
		KeyRecentDownloads:   "Downloads recentes",
		KeyNoVideoSelected:   "Nenhum vídeo selecionado",
		KeyStartTime:         "Início:",
		KeyEndTime:           "Fim:",
		KeyAddTask:           "Adicionar corte",
		KeyPreviewRange:      "Pré-visualizar trecho",
		KeyRemove:            "Remover",
		KeyMoveUp:            "Subir",
		KeyMoveDown:          "Descer",
		KeyStartQueue:        "Iniciar fila",
		KeyLoadQueue:         "Carregar fila",
		KeySaveQueue:         "Salvar fila",
		KeyNoVideoTitle:      "Nenhum vídeo selecionado",
		KeyNoVideoForTask:    "Selecione um arquivo de vídeo para esta tarefa.",
		KeyNoVideoForPreview: "Selecione um arquivo de vídeo para pré-visualizar.",
		KeyNoTasksTitle:      "Sem tarefas",
		KeyNoTasks:           "Não há cortes na fila.",
		KeyInvalidTime:       "Tempo inválido",
		KeyQueueComplete:     "Processamento da fila concluído.",
		KeyQueueBusy:         "A fila já está sendo processada",
		KeyQueueLoaded:       "Fila carregada",
		KeyQueueSaved:        "Fila salva",
		KeyOpenTrimmed:       "Abrir pasta de cortes",

		KeyVideoPreview: "Pré-visualização:",
		KeyPlay:         "Reproduzir",
		KeyPause:        "Pausar",
		KeyMute:         "Silenciar",
		KeyUnmute:       "Ativar som",
		KeyPreviewError: "Erro de pré-visualização",
	}
}
