package conf

// Bootstrap 展示服务启动配置
type Bootstrap struct {
	Server *Server
	Data   *Data
}

type Server struct {
	Http *HTTP
}

type HTTP struct {
	Addr    string
	Timeout string
}

type Data struct {
	Database *Database
}

type Database struct {
	Driver string
	Source string
}
