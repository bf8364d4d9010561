package main

import (
    "flag"
    "gopkg.in/yaml.v3"
    "log"
    "os"
)

type Args struct {
    // IP on which the server will accept connections. Defaults to 0.0.0.0
    IP string `yaml:"ip"`
    // Port on which the server will accept connections. Defaults to 29001
    Port int `yaml:"port"`
    // MaxTextLen of display names and chat lines, in bytes. Defaults to 200
    MaxTextLen int `yaml:"max_text_len"`
    // Debug toggles debug logging
    Debug bool `yaml:"debug"`
}

// parseArgs either from the command line or from the supplied YAML file.
//
// If a YAML file is supplied, it's used as the default parameters, which may be overriden by CLI-supplied arguments.
func parseArgs() Args {
    var args Args
    var confFile string
    const defaultIP = "0.0.0.0"
    const defaultPort = 29001
    const defaultMaxTextLen = 200
    const defaultDebug = false

    flag.StringVar(&args.IP, "IP", defaultIP, "IP on which the server will accept connections")
    flag.IntVar(&args.Port, "Port", defaultPort, "Port on which the server will accept connections")
    flag.IntVar(&args.MaxTextLen, "MaxTextLen", defaultMaxTextLen, "Maximum length of display names and chat lines, in bytes")
    flag.BoolVar(&args.Debug, "Debug", defaultDebug, "Whether debug messages should be logged")
    flag.StringVar(&confFile, "confFile", "", "YAML file with the configuration options. May be overriden by other CLI arguments")
    flag.Parse()

    if len(confFile) != 0 {
        var yamlArgs Args

        data, err := os.ReadFile(confFile)
        if err != nil {
            log.Fatalf("Couldn't open the configuration file '%+v': %+v", confFile, err)
        }

        err = yaml.Unmarshal(data, &yamlArgs)
        if err != nil {
            log.Fatalf("Couldn't decode the configuration file '%+v': %+v", confFile, err)
        }

        // Walk over every set argument to override the YAML file
        flag.Visit(func (f *flag.Flag) {
            if f.Name == "confFile" {
                // Skip the file itself
                return
            }

            var tmp interface{}
            tmp = f.Value
            get, ok := tmp.(flag.Getter)
            if !ok {
                log.Fatalf("'%s' doesn't have an associated flag.Getter", f.Name)
            }

            switch f.Name {
            case "IP":
                val, _ := get.Get().(string)
                log.Printf("Overriding YAML's IP (%+v) with CLI's value (%+v)", yamlArgs.IP, val)
                yamlArgs.IP = val
            case "Port":
                val, _ := get.Get().(int)
                log.Printf("Overriding YAML's Port (%+v) with CLI's value (%+v)", yamlArgs.Port, val)
                yamlArgs.Port = val
            case "MaxTextLen":
                val, _ := get.Get().(int)
                log.Printf("Overriding YAML's MaxTextLen (%+v) with CLI's value (%+v)", yamlArgs.MaxTextLen, val)
                yamlArgs.MaxTextLen = val
            case "Debug":
                val, _ := get.Get().(bool)
                log.Printf("Overriding YAML's Debug (%+v) with CLI's value (%+v)", yamlArgs.Debug, val)
                yamlArgs.Debug = val
            }
        })

        args = yamlArgs
    }

    if args.MaxTextLen <= 0 {
        args.MaxTextLen = defaultMaxTextLen
    }

    log.Printf("Starting server with options:")
    log.Printf("  - IP: %+v", args.IP)
    log.Printf("  - Port: %+v", args.Port)
    log.Printf("  - MaxTextLen: %+v", args.MaxTextLen)
    log.Printf("  - Debug: %+v", args.Debug)

    return args
}
