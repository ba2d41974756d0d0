package ir

// EngineVersion is the airdb engine version, reported by "airdb --version".
const EngineVersion = "0.1.0"
