package config

// LoggerConfig 日志配置。
type LoggerConfig struct {
	Level            string   `json:"level" yaml:"level"`                       // 日志级别: debug/info/warn/error
	Encoding         string   `json:"encoding" yaml:"encoding"`                 // 编码: json/console
	EnableColor      bool     `json:"enableColor" yaml:"enableColor"`           // console 编码时是否彩色
	Development      bool     `json:"development" yaml:"development"`           // 开发模式（错误带堆栈）
	OutputPaths      []string `json:"outputPaths" yaml:"outputPaths"`           // 普通日志输出路径
	ErrorOutputPaths []string `json:"errorOutputPaths" yaml:"errorOutputPaths"` // 错误日志输出路径
}

// DefaultLoggerConfig 返回本地开发的默认配置。
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:            "info",
		Encoding:         "json",
		EnableColor:      false,
		Development:      false,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}
}
